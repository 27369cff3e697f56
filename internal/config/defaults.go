package config

const (
	defaultDataDir        = "~/.local/share/promptcast"
	defaultLogDir         = "~/.local/share/promptcast/logs"
	defaultAPIBind        = "127.0.0.1:7512"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultMinSimilarity  = 70
	defaultSimilarLimit   = 5
	defaultNtfyTimeoutSec = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Matching: Matching{
			MinSimilarity: defaultMinSimilarity,
			SimilarLimit:  defaultSimilarLimit,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeoutSec,
		},
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}
