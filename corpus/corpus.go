// Package corpus models a small, self-contained collection of hyperlinked
// documents as a directed link graph. A corpus maps each page name to the set
// of in-corpus pages it links to; pages with no in-corpus outbound links are
// retained with an empty link set.
package corpus

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/xerrors"
)

// Corpus maps each page in a document collection to the set of other
// in-corpus pages that it links to.
//
// A corpus is expected to be fully constructed before it is handed to any of
// the PageRank estimators and must not be mutated afterwards. Read-only
// access is safe to share across concurrently running estimators.
type Corpus map[string]mapset.Set[string]

// New creates an empty corpus.
func New() Corpus {
	return make(Corpus)
}

// AddPage registers a page with the corpus. Adding an already known page is
// a no-op that preserves any links recorded for it.
func (c Corpus) AddPage(page string) {
	if _, exists := c[page]; !exists {
		c[page] = mapset.NewSet[string]()
	}
}

// AddLink records a directed link from src to dst, registering either page
// with the corpus if not already present. Self-links are ignored.
func (c Corpus) AddLink(src, dst string) {
	if src == dst {
		return
	}
	c.AddPage(src)
	c.AddPage(dst)
	c[src].Add(dst)
}

// Pages returns the corpus page names in lexicographic order.
func (c Corpus) Pages() []string {
	pages := make([]string, 0, len(c))
	for page := range c {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	return pages
}

// Validate checks that the corpus satisfies the invariants the PageRank
// estimators depend on: it contains at least one page and every link target
// refers to a page that is itself part of the corpus.
func (c Corpus) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCorpus
	}

	for page, links := range c {
		if links == nil {
			return xerrors.Errorf("page %q has a nil link set", page)
		}
		for _, target := range links.ToSlice() {
			if _, exists := c[target]; !exists {
				return xerrors.Errorf("page %q links to %q which is not part of the corpus: %w", page, target, ErrUnknownLinkTarget)
			}
		}
	}

	return nil
}
