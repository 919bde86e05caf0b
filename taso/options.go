package taso

import "time"

// DefaultQueueCapacity is spec §4.5's PRIORITY_QUEUE_CAPACITY.
const DefaultQueueCapacity = 10_000

// Config collects every tunable of a Run, built by applying Options over
// DefaultConfig (mirrors dijkstra.Options / dijkstra.DefaultOptions).
type Config struct {
	// QueueCapacity bounds the single-threaded PQ (and scales the
	// multi-threaded work queue as QueueCapacity*NumThreads), per spec
	// §4.5/§5.
	QueueCapacity int
	// Timeout is the wall-clock deadline; zero means no deadline.
	Timeout time.Duration
	// NumThreads selects single-threaded (1) or multi-threaded (>1) mode.
	NumThreads int
	// Logger receives free-text progress lines.
	Logger Logger
	// CSVSink, if non-nil, receives one row per best-so-far improvement.
	CSVSink *CSVSink
	// ResultStore, if non-nil, receives one durable row per best-so-far
	// improvement in addition to (or instead of) CSVSink.
	ResultStore ResultStore
}

// Option configures a Run (mirrors dijkstra.Option).
type Option func(*Config)

// WithQueueCapacity overrides DefaultQueueCapacity. Panics on n <= 0: an
// empty or negative capacity admits no work at all, which is never a
// meaningful configuration rather than a recoverable one.
func WithQueueCapacity(n int) Option {
	return func(c *Config) {
		if n <= 0 {
			panic("taso: QueueCapacity must be positive")
		}
		c.QueueCapacity = n
	}
}

// WithTimeout sets the wall-clock deadline (spec §4.5's `timeout`).
// d <= 0 means no deadline, matching DefaultConfig.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithThreads sets the worker count (spec §4.5's `n_threads`). Panics on
// n <= 0: zero workers can never make progress.
func WithThreads(n int) Option {
	return func(c *Config) {
		if n <= 0 {
			panic("taso: NumThreads must be positive")
		}
		c.NumThreads = n
	}
}

// WithLogger overrides the default stderr logger. Panics on a nil logger:
// a nil Logger would crash the first progress line.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		if l == nil {
			panic("taso: Logger must not be nil")
		}
		c.Logger = l
	}
}

// WithCSVSink attaches a best-candidate CSV sink.
func WithCSVSink(sink *CSVSink) Option {
	return func(c *Config) { c.CSVSink = sink }
}

// WithResultStore attaches an optional durable result sink (e.g. package
// resultstore's Postgres-backed store).
func WithResultStore(store ResultStore) Option {
	return func(c *Config) { c.ResultStore = store }
}

// DefaultConfig returns sensible defaults: capacity 10,000, no deadline,
// one worker thread, a stderr logger, no CSV/result-store sink.
func DefaultConfig() Config {
	return Config{
		QueueCapacity: DefaultQueueCapacity,
		Timeout:       0,
		NumThreads:    1,
		Logger:        NewStdLogger(),
	}
}
