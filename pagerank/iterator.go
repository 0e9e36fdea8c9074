package pagerank

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"
	multierror "github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"

	"github.com/websurf/surfrank/corpus"
)

const (
	// DefaultMaxDeltaForConvergence is the per-page score delta under which
	// the iterative estimator considers the rank vector converged.
	DefaultMaxDeltaForConvergence = 0.001

	// DefaultMaxIterations bounds the number of update passes the iterative
	// estimator performs before giving up on convergence. The fixed-point
	// iteration settles within a few dozen passes on well-formed corpora so
	// the default is a generous safety net.
	DefaultMaxIterations = 1000
)

// IteratorConfig encapsulates the parameters for creating a new iterative
// estimator instance.
type IteratorConfig struct {
	// DampingFactor is the probability that a random surfer follows an
	// outbound link instead of teleporting to a random page.
	//
	// If not specified, a default value of 0.85 will be used instead.
	DampingFactor float64

	// The estimator keeps applying update passes until the absolute score
	// delta of every page between two consecutive passes is at most
	// MaxDeltaForConvergence.
	//
	// If not specified, a default value of 0.001 will be used instead.
	MaxDeltaForConvergence float64

	// MaxIterations caps the total number of update passes. If the rank
	// vector has not converged once the cap is reached, Estimate fails with
	// ErrNotConverged instead of looping indefinitely.
	//
	// If not specified, a default value of 1000 will be used instead.
	MaxIterations int
}

// validate checks whether the iterative estimator configuration is valid and
// sets the default values where required.
func (c *IteratorConfig) validate() error {
	var err error
	if c.DampingFactor < 0 || c.DampingFactor > 1.0 {
		err = multierror.Append(err, xerrors.New("DampingFactor must be in the range (0, 1]"))
	} else if c.DampingFactor == 0 {
		c.DampingFactor = DefaultDampingFactor
	}

	if c.MaxDeltaForConvergence < 0 || c.MaxDeltaForConvergence >= 1.0 {
		err = multierror.Append(err, xerrors.New("MaxDeltaForConvergence must be in the range (0, 1)"))
	} else if c.MaxDeltaForConvergence == 0 {
		c.MaxDeltaForConvergence = DefaultMaxDeltaForConvergence
	}

	if c.MaxIterations < 0 {
		err = multierror.Append(err, xerrors.New("MaxIterations must be a positive integer"))
	} else if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}

	return err
}

// Iterator estimates PageRank scores by solving the PageRank fixed-point
// equation via repeated substitution until the score of every page settles.
//
// An Iterator instance must not be used for concurrent Estimate calls;
// concurrent runs require separate instances.
type Iterator struct {
	cfg        IteratorConfig
	lastPasses int
}

// NewIterator returns a new iterative estimator using the provided config
// options.
func NewIterator(cfg IteratorConfig) (*Iterator, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("iterator config validation failed: %w", err)
	}
	return &Iterator{cfg: cfg}, nil
}

// Estimate calculates the PageRank score of every page in the corpus by
// initializing each page to 1/N and repeatedly applying the PageRank update
// rule until no page's score changes by more than the configured delta
// between two consecutive passes. Each pass reads only the previous pass's
// complete rank vector so updates within a pass never observe each other.
//
// The estimate is deterministic: identical inputs always produce identical
// scores, and the returned scores sum to 1 modulo floating point drift.
func (it *Iterator) Estimate(c corpus.Corpus) (Scores, error) {
	it.lastPasses = 0
	if err := c.Validate(); err != nil {
		return nil, xerrors.Errorf("iterate pagerank: %w", err)
	}

	working := resolveDangling(c)
	n := float64(len(working))
	jumpProb := (1.0 - it.cfg.DampingFactor) / n

	prev := make(Scores, len(working))
	for page := range working {
		prev[page] = 1.0 / n
	}

	for pass := 0; pass < it.cfg.MaxIterations; pass++ {
		it.lastPasses = pass + 1
		next := make(Scores, len(working))
		converged := true
		for page := range working {
			var linkedMass float64
			for origin, links := range working {
				if links.Contains(page) {
					linkedMass += prev[origin] / float64(links.Cardinality())
				}
			}

			next[page] = jumpProb + it.cfg.DampingFactor*linkedMass
			if math.Abs(next[page]-prev[page]) > it.cfg.MaxDeltaForConvergence {
				converged = false
			}
		}

		if converged {
			return next, nil
		}
		prev = next
	}

	return nil, xerrors.Errorf("iterate pagerank: %w within %d passes", ErrNotConverged, it.cfg.MaxIterations)
}

// Passes returns the number of update passes performed by the most recent
// call to Estimate, whether or not that call converged.
func (it *Iterator) Passes() int {
	return it.lastPasses
}

// resolveDangling returns a copy of the corpus where every dangling page is
// rewritten to link to all pages in the corpus, itself included. This keeps
// the transition matrix stochastic (no score mass is lost at pages without
// outbound links) and mirrors the dangling-page branch of Transition.
func resolveDangling(c corpus.Corpus) corpus.Corpus {
	allPages := mapset.NewSet(c.Pages()...)

	fixed := make(corpus.Corpus, len(c))
	for page, links := range c {
		if links.Cardinality() == 0 {
			fixed[page] = allPages
			continue
		}
		fixed[page] = links
	}
	return fixed
}
