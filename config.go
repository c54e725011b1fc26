package tap

// Strategy selects how the notification pipeline composes its hooks.
type Strategy string

const (
	// StrategyFanout registers hooks against a shared registry that can be
	// mutated at runtime. This is the default.
	StrategyFanout Strategy = "fanout"

	// StrategyChain composes hooks at assembly time, each wrapping the
	// combined effect of the hooks added before it.
	StrategyChain Strategy = "chain"
)

// Config holds configuration shared across tap components.
type Config struct {
	// Strategy is the pipeline composition strategy.
	Strategy Strategy

	// Codec is the name of the payload codec used when persisting
	// imported records ("json" or "msgpack").
	Codec string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Strategy: StrategyFanout,
		Codec:    "json",
	}
}
