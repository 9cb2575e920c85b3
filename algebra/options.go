package algebra

// DefaultPrimalityRounds is the number of Miller-Rabin rounds used to check
// structural parameters, on top of the Baillie-PSW test of ProbablyPrime.
const DefaultPrimalityRounds = 20

// Options holds the construction settings shared by all factories.
type Options struct {
	Registry        *Registry
	PrimalityRounds int
}

// Option configures a factory call.
type Option func(*Options)

// WithRegistry selects the registry canonical instances are taken from.
func WithRegistry(r *Registry) Option {
	return func(o *Options) {
		if r != nil {
			o.Registry = r
		}
	}
}

// WithPrimalityRounds sets the Miller-Rabin rounds for parameter validation.
func WithPrimalityRounds(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.PrimalityRounds = n
		}
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{
		Registry:        DefaultRegistry(),
		PrimalityRounds: DefaultPrimalityRounds,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Apply returns opts as Option values that reproduce o, so that derived
// structures are built in the same registry.
func (o Options) Apply() []Option {
	return []Option{WithRegistry(o.Registry), WithPrimalityRounds(o.PrimalityRounds)}
}
