package matchgo

// Options contains configuration options for a MatchBin.
type Options struct {
	// Logger receives structured operation logs. Defaults to a noop
	// logger.
	Logger *Logger

	// Metrics receives operational metrics. Defaults to the noop
	// collector.
	Metrics MetricsCollector
}

// DefaultOptions contains the default configuration options for a MatchBin.
var DefaultOptions = Options{
	Logger:  nil, // resolved to NoopLogger by New
	Metrics: NoopMetricsCollector{},
}
