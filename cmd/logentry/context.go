package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"logentry/internal/config"
	"logentry/internal/logbook"
	"logentry/internal/logging"
	"logentry/internal/options"
	"logentry/internal/queue"
	"logentry/internal/submit"
)

// transportFactory builds the submission transport. store is nil when the
// chosen pathway may not queue.
type transportFactory func(cfg *config.Config, store *queue.Store, logger *slog.Logger) submit.Transport

func defaultTransport(cfg *config.Config, store *queue.Store, logger *slog.Logger) submit.Transport {
	return logbook.NewClient(cfg, store, logger)
}

type commandContext struct {
	configFlag string
	stdin      io.Reader
	stderr     io.Writer
	transport  transportFactory

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(stdin io.Reader, stderr io.Writer, factory transportFactory) *commandContext {
	if factory == nil {
		factory = defaultTransport
	}
	return &commandContext{
		stdin:     stdin,
		stderr:    stderr,
		transport: factory,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// optionSet reports the configured schema version, falling back to Current
// when the configuration cannot be loaded.
func (c *commandContext) optionSet() options.Version {
	cfg, err := c.ensureConfig()
	if err != nil {
		return options.Current
	}
	version, err := options.ParseVersion(cfg.CLI.OptionSet)
	if err != nil {
		return options.Current
	}
	return version
}

func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Writer: c.stderr,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) openStore() (*queue.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureQueueDir(); err != nil {
		return nil, err
	}
	return queue.Open(cfg.Queue.Dir)
}
