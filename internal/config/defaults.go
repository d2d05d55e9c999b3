package config

const (
	defaultServerURL      = "https://logbooks.jlab.org/incoming"
	defaultTimeoutSeconds = 30
	defaultCertPath       = "~/.elogcert"
	defaultQueueDir       = "~/.local/share/logentry/queue"
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
	defaultOptionSet      = "current"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			URL:            defaultServerURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Credentials: Credentials{
			DefaultCert: defaultCertPath,
		},
		Queue: Queue{
			Dir: defaultQueueDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		CLI: CLI{
			OptionSet: defaultOptionSet,
		},
	}
}
