package corpus

import "golang.org/x/xerrors"

var (
	// ErrEmptyCorpus is returned when an operation requires a corpus with at
	// least one page.
	ErrEmptyCorpus = xerrors.New("corpus contains no pages")

	// ErrUnknownLinkTarget is returned when a page links to a target that is
	// not part of the corpus.
	ErrUnknownLinkTarget = xerrors.New("link target not part of corpus")

	// ErrUnknownPage is returned when a lookup refers to a page that is not
	// part of the corpus.
	ErrUnknownPage = xerrors.New("page not part of corpus")
)
