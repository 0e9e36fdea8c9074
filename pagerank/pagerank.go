package pagerank

const (
	// DefaultDampingFactor is the probability that a random surfer follows
	// one of the outbound links on their current page instead of jumping to
	// a uniformly random page in the corpus.
	DefaultDampingFactor = 0.85

	// DefaultSampleCount is the number of random walk steps performed by the
	// sampling estimator when no sample count is specified.
	DefaultSampleCount = 10000
)

// Distribution describes the probability of a random surfer visiting each
// page in a corpus on their next step. The probabilities of all pages sum to
// 1 modulo floating point rounding.
type Distribution map[string]float64

// Scores maps each page in a corpus to its estimated PageRank value. The
// scores of all pages sum to 1 modulo floating point rounding.
type Scores map[string]float64

// Sum returns the total score mass assigned across all pages.
func (s Scores) Sum() float64 {
	var sum float64
	for _, score := range s {
		sum += score
	}
	return sum
}
