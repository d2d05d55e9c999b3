package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeServer()
	if err := c.normalizeCredentials(); err != nil {
		return err
	}
	if err := c.normalizeQueue(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.CLI.OptionSet = strings.ToLower(strings.TrimSpace(c.CLI.OptionSet))
	if c.CLI.OptionSet == "" {
		c.CLI.OptionSet = defaultOptionSet
	}
	return nil
}

func (c *Config) normalizeServer() {
	if value, ok := os.LookupEnv("LOGENTRY_SERVER_URL"); ok && strings.TrimSpace(value) != "" {
		c.Server.URL = value
	}
	c.Server.URL = strings.TrimRight(strings.TrimSpace(c.Server.URL), "/")
	if c.Server.URL == "" {
		c.Server.URL = defaultServerURL
	}
	if c.Server.TimeoutSeconds == 0 {
		c.Server.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.Server.CAFile = strings.TrimSpace(c.Server.CAFile)
}

func (c *Config) normalizeCredentials() error {
	if value, ok := os.LookupEnv("LOGENTRY_CERT"); ok && strings.TrimSpace(value) != "" {
		c.Credentials.DefaultCert = value
	}
	if strings.TrimSpace(c.Credentials.DefaultCert) == "" {
		c.Credentials.DefaultCert = defaultCertPath
	}
	var err error
	if c.Credentials.DefaultCert, err = expandPath(strings.TrimSpace(c.Credentials.DefaultCert)); err != nil {
		return fmt.Errorf("credentials.default_cert: %w", err)
	}
	if c.Server.CAFile != "" {
		if c.Server.CAFile, err = expandPath(c.Server.CAFile); err != nil {
			return fmt.Errorf("server.ca_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeQueue() error {
	if strings.TrimSpace(c.Queue.Dir) == "" {
		c.Queue.Dir = defaultQueueDir
	}
	var err error
	if c.Queue.Dir, err = expandPath(strings.TrimSpace(c.Queue.Dir)); err != nil {
		return fmt.Errorf("queue.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
