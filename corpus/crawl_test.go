package corpus_test

import (
	"os"
	"path/filepath"

	gc "gopkg.in/check.v1"

	"github.com/websurf/surfrank/corpus"
)

var _ = gc.Suite(new(CrawlTestSuite))

type CrawlTestSuite struct {
}

func (s *CrawlTestSuite) TestFromDirectory(c *gc.C) {
	dir := c.MkDir()
	s.writeDoc(c, dir, "a.html", `
<html><body>
<p>See <a href="b.html">page b</a> and <a class="nav" href="c.html">page c</a>.</p>
<p>This one is <a href="a.html">a self link</a> and this one
<a href="https://example.com/external.html">leaves the corpus</a>.</p>
</body></html>`)
	s.writeDoc(c, dir, "b.html", `<html><body><a href="c.html">onwards</a></body></html>`)
	s.writeDoc(c, dir, "c.html", `<html><body>no links here</body></html>`)
	s.writeDoc(c, dir, "notes.txt", `<a href="a.html">not an html document</a>`)

	cp, err := corpus.FromDirectory(dir)
	c.Assert(err, gc.IsNil)
	c.Assert(cp.Validate(), gc.IsNil)

	c.Assert(cp.Pages(), gc.DeepEquals, []string{"a.html", "b.html", "c.html"})
	c.Assert(cp["a.html"].Contains("b.html"), gc.Equals, true)
	c.Assert(cp["a.html"].Contains("c.html"), gc.Equals, true)
	c.Assert(cp["a.html"].Cardinality(), gc.Equals, 2, gc.Commentf("self links and out-of-corpus links must be dropped"))
	c.Assert(cp["b.html"].Cardinality(), gc.Equals, 1)
	c.Assert(cp["c.html"].Cardinality(), gc.Equals, 0, gc.Commentf("a page without in-corpus links must be retained as dangling"))
}

func (s *CrawlTestSuite) TestFromDirectoryWithMissingDirectory(c *gc.C) {
	_, err := corpus.FromDirectory(filepath.Join(c.MkDir(), "does-not-exist"))
	c.Assert(err, gc.ErrorMatches, "corpus: unable to scan directory: .*")
}

func (s *CrawlTestSuite) TestFilterLinks(c *gc.C) {
	rawLinks := map[string][]string{
		"a.html": {"b.html", "external.html", "b.html"},
		"b.html": {"missing.html"},
	}

	cp := corpus.FilterLinks(rawLinks)
	c.Assert(cp.Validate(), gc.IsNil)
	c.Assert(cp.Pages(), gc.DeepEquals, []string{"a.html", "b.html"})
	c.Assert(cp["a.html"].Cardinality(), gc.Equals, 1)
	c.Assert(cp["a.html"].Contains("b.html"), gc.Equals, true)
	c.Assert(cp["b.html"].Cardinality(), gc.Equals, 0)
}

func (s *CrawlTestSuite) writeDoc(c *gc.C, dir, name, content string) {
	c.Assert(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), gc.IsNil)
}
