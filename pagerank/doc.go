// Package pagerank estimates the PageRank centrality of the pages in a
// corpus under the random surfer model using two independent methods: a
// stochastic sampling estimator that simulates a long random walk and a
// deterministic estimator that solves the PageRank fixed-point equation by
// repeated substitution until convergence. On a well-formed corpus the two
// estimators are expected to agree within a small tolerance.
package pagerank
