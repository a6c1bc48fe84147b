package search

// DefaultIterations is the ILS round budget.
const DefaultIterations = 500

// Option applies a configuration option to a search.
type Option func(*options)

type options struct {
	iterations int
	onRound    func(round, fitness, best int)
}

// WithIterations overrides the number of ILS rounds.
func WithIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.iterations = n
		}
	}
}

// WithRoundHook registers fn to observe every ILS round: the round index, the
// fitness the round converged to and the best fitness so far.
func WithRoundHook(fn func(round, fitness, best int)) Option {
	return func(o *options) {
		o.onRound = fn
	}
}

func newOptions(opts ...Option) options {
	o := options{iterations: DefaultIterations}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
