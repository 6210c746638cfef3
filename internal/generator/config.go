package generator

// Config drives the synthetic transaction generator.
type Config struct {
	NumTransactions int
	Seed            int64
	Currency        string
}

// DefaultConfig returns baseline settings producing a demo-sized dataset.
func DefaultConfig() Config {
	return Config{
		NumTransactions: 50,
		Seed:            42,
		Currency:        "EUR",
	}
}
