package domain

// RetrievalConfig holds ranking and answer settings shared by the library and the server.
type RetrievalConfig struct {
	DefaultTopK    int
	MaxTopK        int
	MinScore       float64
	MaxQueryLength int
}

// DefaultRetrievalConfig returns the stock relevance floor and result count.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		DefaultTopK:    3,
		MaxTopK:        20,
		MinScore:       0.08,
		MaxQueryLength: 1024,
	}
}
