// Package config defines default configuration and the viper-backed loader.
package config

import "time"

// Defaults.
const (
	DefaultNodesPath          = "data/nodes.txt"
	DefaultEdgesPath          = "data/edges.txt"
	DefaultListen             = ":8000"
	DefaultReportURL          = "static"
	DefaultReportKey          = "path_statistics.json"
	DefaultSampleSize         = 5000
	DefaultDistributionSample = 100
	DefaultDiameterMode       = "approximate"
	DefaultExactMaxNodes      = 20000
	DefaultExactTimeout       = 10 * time.Minute
	DefaultRateLimit          = 50.0
	DefaultRateBurst          = 100
	DefaultSuggestLimit       = 10
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		NodesPath:          DefaultNodesPath,
		EdgesPath:          DefaultEdgesPath,
		Listen:             DefaultListen,
		ReportURL:          DefaultReportURL,
		ReportKey:          DefaultReportKey,
		SampleSize:         DefaultSampleSize,
		DistributionSample: DefaultDistributionSample,
		Seed:               1,
		DiameterMode:       DefaultDiameterMode,
		ExactMaxNodes:      DefaultExactMaxNodes,
		ExactTimeout:       DefaultExactTimeout,
		RateLimit:          DefaultRateLimit,
		RateBurst:          DefaultRateBurst,
		SuggestLimit:       DefaultSuggestLimit,
		LogLevel:           DefaultLogLevel,
		LogFormat:          DefaultLogFormat,
	}
}
