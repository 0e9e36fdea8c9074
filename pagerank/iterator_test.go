package pagerank_test

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"

	"github.com/websurf/surfrank/corpus"
	"github.com/websurf/surfrank/pagerank"
)

var _ = gc.Suite(new(IteratorTestSuite))

type IteratorTestSuite struct {
}

func (s *IteratorTestSuite) TestSimpleCycle(c *gc.C) {
	spec := `
 (A) -> (B) -> (C)
  ^             |
  |             |
  +-------------+

Expect PageRank score to be distributed evenly across the three nodes.
`
	c.Log(spec)

	cp := corpus.New()
	cp.AddLink("a.html", "b.html")
	cp.AddLink("b.html", "c.html")
	cp.AddLink("c.html", "a.html")

	scores := s.estimate(c, cp)
	for _, page := range cp.Pages() {
		absDelta := math.Abs(scores[page] - 1.0/3.0)
		c.Assert(absDelta <= 0.01, gc.Equals, true, gc.Commentf("expected score for %v to be 1/3 ± 0.01; got %f", page, scores[page]))
	}
}

func (s *IteratorTestSuite) TestDanglingPageRedistributesItsMass(c *gc.C) {
	spec := `
 (A) <-> (B) -> (C)

C has no outbound links so its mass is redistributed uniformly, which acts
like a backlink to every page. A and C end up with the same score as their
update rules become identical, and B keeps the largest score thanks to its
two incoming links.
`
	c.Log(spec)

	cp := corpus.New()
	cp.AddLink("a.html", "b.html")
	cp.AddLink("b.html", "a.html")
	cp.AddLink("b.html", "c.html")
	cp.AddPage("c.html")

	scores := s.estimate(c, cp)
	expScores := map[string]float64{
		"a.html": 0.3032,
		"b.html": 0.3936,
		"c.html": 0.3032,
	}
	for page, expScore := range expScores {
		absDelta := math.Abs(scores[page] - expScore)
		c.Assert(absDelta <= 0.01, gc.Equals, true, gc.Commentf("expected score for %v to be %f ± 0.01; got %f", page, expScore, scores[page]))
	}
}

func (s *IteratorTestSuite) TestDeterminism(c *gc.C) {
	cp := threePageCycle()

	iterator, err := pagerank.NewIterator(pagerank.IteratorConfig{})
	c.Assert(err, gc.IsNil)

	first, err := iterator.Estimate(cp)
	c.Assert(err, gc.IsNil)
	second, err := iterator.Estimate(cp)
	c.Assert(err, gc.IsNil)
	c.Assert(first, gc.DeepEquals, second, gc.Commentf("expected identical inputs to produce identical scores"))
}

func (s *IteratorTestSuite) TestScoresSumToOne(c *gc.C) {
	cp := corpus.New()
	cp.AddLink("a.html", "b.html")
	cp.AddLink("b.html", "a.html")
	cp.AddLink("b.html", "c.html")
	cp.AddPage("c.html")
	cp.AddPage("d.html")

	scores := s.estimate(c, cp)
	c.Assert(scores, gc.HasLen, len(cp))
	c.Assert(math.Abs(1.0-scores.Sum()) <= 1e-6, gc.Equals, true, gc.Commentf("expected scores to sum to 1.0; got %f", scores.Sum()))
}

func (s *IteratorTestSuite) TestDanglingFixMatchesExplicitLinksToAllPages(c *gc.C) {
	dangling := corpus.New()
	dangling.AddLink("a.html", "b.html")
	dangling.AddPage("b.html")

	explicit := corpus.New()
	explicit.AddLink("a.html", "b.html")
	explicit["b.html"] = mapset.NewSet("a.html", "b.html")

	danglingScores := s.estimate(c, dangling)
	explicitScores := s.estimate(c, explicit)

	for page := range danglingScores {
		absDelta := math.Abs(danglingScores[page] - explicitScores[page])
		c.Assert(absDelta <= 1e-9, gc.Equals, true, gc.Commentf("expected the dangling rewrite to match explicit links to all pages for %q; got %f vs %f", page, danglingScores[page], explicitScores[page]))
	}
}

func (s *IteratorTestSuite) TestPassesReportsMostRecentEstimate(c *gc.C) {
	cp := corpus.New()
	cp.AddLink("a.html", "b.html")
	cp.AddLink("b.html", "a.html")
	cp.AddLink("b.html", "c.html")
	cp.AddPage("c.html")

	iterator, err := pagerank.NewIterator(pagerank.IteratorConfig{})
	c.Assert(err, gc.IsNil)
	c.Assert(iterator.Passes(), gc.Equals, 0, gc.Commentf("no estimate has run yet"))

	_, err = iterator.Estimate(cp)
	c.Assert(err, gc.IsNil)
	passes := iterator.Passes()
	c.Assert(passes > 1, gc.Equals, true, gc.Commentf("expected an asymmetric corpus to need multiple passes; got %d", passes))

	// Identical inputs take the same number of passes.
	_, err = iterator.Estimate(cp)
	c.Assert(err, gc.IsNil)
	c.Assert(iterator.Passes(), gc.Equals, passes)

	// A capped run reports the passes it actually performed.
	capped, err := pagerank.NewIterator(pagerank.IteratorConfig{MaxIterations: 1})
	c.Assert(err, gc.IsNil)
	_, err = capped.Estimate(cp)
	c.Assert(xerrors.Is(err, pagerank.ErrNotConverged), gc.Equals, true)
	c.Assert(capped.Passes(), gc.Equals, 1)
}

func (s *IteratorTestSuite) TestNonConvergenceIsReported(c *gc.C) {
	cp := corpus.New()
	cp.AddLink("a.html", "b.html")
	cp.AddLink("b.html", "a.html")
	cp.AddLink("b.html", "c.html")
	cp.AddPage("c.html")

	iterator, err := pagerank.NewIterator(pagerank.IteratorConfig{MaxIterations: 1})
	c.Assert(err, gc.IsNil)

	_, err = iterator.Estimate(cp)
	c.Assert(xerrors.Is(err, pagerank.ErrNotConverged), gc.Equals, true, gc.Commentf("expected ErrNotConverged; got %v", err))
}

func (s *IteratorTestSuite) TestConfigValidation(c *gc.C) {
	_, err := pagerank.NewIterator(pagerank.IteratorConfig{DampingFactor: -0.5})
	c.Assert(err, gc.ErrorMatches, "(?ms).*DampingFactor must be in the range.*")

	_, err = pagerank.NewIterator(pagerank.IteratorConfig{MaxDeltaForConvergence: 1.5})
	c.Assert(err, gc.ErrorMatches, "(?ms).*MaxDeltaForConvergence must be in the range.*")

	_, err = pagerank.NewIterator(pagerank.IteratorConfig{MaxIterations: -1})
	c.Assert(err, gc.ErrorMatches, "(?ms).*MaxIterations must be a positive integer.*")
}

func (s *IteratorTestSuite) TestInvalidCorpus(c *gc.C) {
	iterator, err := pagerank.NewIterator(pagerank.IteratorConfig{})
	c.Assert(err, gc.IsNil)

	_, err = iterator.Estimate(corpus.New())
	c.Assert(err, gc.ErrorMatches, "iterate pagerank: corpus contains no pages")
}

func (s *IteratorTestSuite) estimate(c *gc.C, cp corpus.Corpus) pagerank.Scores {
	iterator, err := pagerank.NewIterator(pagerank.IteratorConfig{})
	c.Assert(err, gc.IsNil)

	scores, err := iterator.Estimate(cp)
	c.Assert(err, gc.IsNil)
	return scores
}
