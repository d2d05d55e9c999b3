package logbook

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/sys/unix"
)

func checkReadable(path string) error {
	if path == "" {
		return &CredentialError{Path: "(unset)", Err: errors.New("no certificate configured")}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return &CredentialError{Path: path, Err: fmt.Errorf("not readable: %w", err)}
	}
	return nil
}

func (c *Client) tlsConfig(certPath string) (*tls.Config, error) {
	if err := checkReadable(certPath); err != nil {
		return nil, err
	}
	pair, err := tls.LoadX509KeyPair(certPath, certPath)
	if err != nil {
		return nil, &CredentialError{Path: certPath, Err: err}
	}

	tlsCfg := &tls.Config{
		Certificates:       []tls.Certificate{pair},
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: c.cfg.Server.InsecureSkipVerify, //nolint:gosec
	}
	if c.cfg.Server.CAFile != "" {
		pem, err := os.ReadFile(c.cfg.Server.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read server.ca_file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("server.ca_file %s holds no certificates", c.cfg.Server.CAFile)
		}
		tlsCfg.RootCAs = pool
	}
	return tlsCfg, nil
}

func (c *Client) httpClient(certPath string) (HTTPDoer, error) {
	if c.doer != nil {
		if err := checkReadable(certPath); err != nil {
			return nil, err
		}
		return c.doer, nil
	}
	tlsCfg, err := c.tlsConfig(certPath)
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg
	return &http.Client{Transport: transport, Timeout: c.cfg.Timeout()}, nil
}
