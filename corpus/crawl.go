package corpus

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/xerrors"
)

var findLinkRegex = regexp.MustCompile(`(?i)<a\s+(?:[^>]*?)href\s*=\s*"([^"]*)"`)

// FromDirectory builds a corpus from a directory of HTML documents. Each
// document with an ".html" extension becomes a page keyed by its file name;
// its outbound links are the href targets of its anchor tags, restricted to
// other documents in the same directory.
func FromDirectory(dir string) (Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, xerrors.Errorf("corpus: unable to scan directory: %w", err)
	}

	rawLinks := make(map[string][]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, xerrors.Errorf("corpus: unable to read %q: %w", name, err)
		}

		rawLinks[name] = nil
		for _, match := range findLinkRegex.FindAllStringSubmatch(string(content), -1) {
			if match[1] == name {
				continue
			}
			rawLinks[name] = append(rawLinks[name], match[1])
		}
	}

	return FilterLinks(rawLinks), nil
}

// FilterLinks converts a raw page-to-link-targets mapping into a sanitized
// corpus by dropping any link target that does not refer to another page in
// the same mapping. Pages whose links are all filtered out are retained with
// an empty link set.
func FilterLinks(rawLinks map[string][]string) Corpus {
	sanitized := New()
	for page := range rawLinks {
		sanitized.AddPage(page)
	}
	for page, targets := range rawLinks {
		for _, target := range targets {
			if _, inCorpus := rawLinks[target]; inCorpus {
				sanitized.AddLink(page, target)
			}
		}
	}
	return sanitized
}
