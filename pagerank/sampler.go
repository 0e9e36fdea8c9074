package pagerank

import (
	"math/rand"

	multierror "github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"

	"github.com/websurf/surfrank/corpus"
)

// Rand is the source of randomness consumed by the sampling estimator. It is
// satisfied by *math/rand.Rand, which allows tests to inject a seeded source
// and obtain reproducible walks.
type Rand interface {
	// Intn returns a uniformly distributed int in [0, n).
	Intn(n int) int

	// Float64 returns a uniformly distributed float64 in [0.0, 1.0).
	Float64() float64
}

// systemRand delegates to the shared math/rand source so that, unless a
// caller injects their own source, repeated sampling runs remain
// independently random.
type systemRand struct{}

func (systemRand) Intn(n int) int   { return rand.Intn(n) }
func (systemRand) Float64() float64 { return rand.Float64() }

// SamplerConfig encapsulates the parameters for creating a new sampling
// estimator instance.
type SamplerConfig struct {
	// DampingFactor is the probability that the simulated surfer follows an
	// outbound link instead of teleporting to a random page.
	//
	// If not specified, a default value of 0.85 will be used instead.
	DampingFactor float64

	// Samples is the number of steps in the simulated random walk. Larger
	// values reduce the variance of the estimate.
	//
	// If not specified, a default value of 10000 will be used instead.
	Samples int

	// Rand is the source of randomness for selecting the starting page and
	// for each weighted step of the walk. If not specified, the shared
	// math/rand source will be used instead.
	Rand Rand
}

// validate checks whether the sampler configuration is valid and sets the
// default values where required.
func (c *SamplerConfig) validate() error {
	var err error
	if c.DampingFactor < 0 || c.DampingFactor > 1.0 {
		err = multierror.Append(err, xerrors.New("DampingFactor must be in the range (0, 1]"))
	} else if c.DampingFactor == 0 {
		c.DampingFactor = DefaultDampingFactor
	}

	if c.Samples < 0 {
		err = multierror.Append(err, xerrors.New("Samples must be a positive integer"))
	} else if c.Samples == 0 {
		c.Samples = DefaultSampleCount
	}

	if c.Rand == nil {
		c.Rand = systemRand{}
	}

	return err
}

// Sampler estimates PageRank scores by simulating a long random walk over
// the corpus and measuring the visitation frequency of each page.
type Sampler struct {
	cfg SamplerConfig
}

// NewSampler returns a new sampling estimator using the provided config
// options.
func NewSampler(cfg SamplerConfig) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("sampler config validation failed: %w", err)
	}
	return &Sampler{cfg: cfg}, nil
}

// Estimate performs a random walk of the configured length over the corpus
// and returns the accumulated visitation frequency of each page. Every page
// in the corpus appears in the result, including pages the walk never
// reached; the returned scores sum to 1.
//
// The estimate is stochastic: repeated calls with the same corpus may return
// different scores unless a deterministic Rand source was configured.
func (s *Sampler) Estimate(c corpus.Corpus) (Scores, error) {
	if err := c.Validate(); err != nil {
		return nil, xerrors.Errorf("sample pagerank: %w", err)
	}

	pages := c.Pages()
	scores := make(Scores, len(pages))
	for _, page := range pages {
		scores[page] = 0
	}

	// Each step deposits exactly 1/n of the total score mass on the page the
	// surfer currently occupies.
	inc := 1.0 / float64(s.cfg.Samples)
	current := pages[s.cfg.Rand.Intn(len(pages))]
	for i := 0; i < s.cfg.Samples; i++ {
		scores[current] += inc

		dist, err := Transition(c, current, s.cfg.DampingFactor)
		if err != nil {
			return nil, xerrors.Errorf("sample pagerank: %w", err)
		}
		current = pickPage(pages, dist, s.cfg.Rand.Float64())
	}

	return scores, nil
}

// pickPage maps a uniform draw from [0, 1) to a page via the cumulative
// transition distribution. Pages are visited in lexicographic order so that
// a seeded random source reproduces the same walk across runs.
func pickPage(pages []string, dist Distribution, draw float64) string {
	var cumulative float64
	for _, page := range pages {
		cumulative += dist[page]
		if draw < cumulative {
			return page
		}
	}

	// The cumulative sum can land marginally below 1.0 due to floating point
	// rounding; attribute the residual interval to the last page.
	return pages[len(pages)-1]
}
