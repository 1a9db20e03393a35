package render

// BatchOption configures RenderAll.
type BatchOption func(*batchConfig)

type batchConfig struct {
	// concurrency caps in-flight renders; zero or less means one goroutine
	// per job.
	concurrency int
}

// WithConcurrency caps the number of renders running at once.
func WithConcurrency(n int) BatchOption {
	return func(cfg *batchConfig) {
		cfg.concurrency = n
	}
}
