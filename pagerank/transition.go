package pagerank

import (
	"golang.org/x/xerrors"

	"github.com/websurf/surfrank/corpus"
)

// Transition returns the probability distribution over which page a random
// surfer visits next, given their current page. With probability
// dampingFactor the surfer follows one of the outbound links of page chosen
// uniformly at random; with probability 1 - dampingFactor they jump to a
// page chosen uniformly at random from the entire corpus.
//
// A dangling page (one with no in-corpus outbound links) is treated as if it
// linked to every page in the corpus, yielding a uniform distribution.
//
// Transition is a pure function; it never mutates the corpus.
func Transition(c corpus.Corpus, page string, dampingFactor float64) (Distribution, error) {
	if dampingFactor < 0 || dampingFactor > 1.0 {
		return nil, xerrors.Errorf("transition: damping factor must be in the range [0, 1]; got %f", dampingFactor)
	}
	if len(c) == 0 {
		return nil, xerrors.Errorf("transition: %w", corpus.ErrEmptyCorpus)
	}
	links, exists := c[page]
	if !exists {
		return nil, xerrors.Errorf("transition: %q: %w", page, corpus.ErrUnknownPage)
	}

	dist := make(Distribution, len(c))
	if links == nil || links.Cardinality() == 0 {
		uniform := 1.0 / float64(len(c))
		for p := range c {
			dist[p] = uniform
		}
		return dist, nil
	}

	jumpProb := (1.0 - dampingFactor) / float64(len(c))
	followProb := dampingFactor / float64(links.Cardinality())
	for p := range c {
		dist[p] = jumpProb
		if links.Contains(p) {
			dist[p] += followProb
		}
	}

	return dist, nil
}
