package pagerank

import "golang.org/x/xerrors"

// ErrNotConverged is returned by the iterative estimator when the rank
// vector fails to settle within the configured maximum number of passes.
var ErrNotConverged = xerrors.New("pagerank estimate did not converge")
