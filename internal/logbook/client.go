package logbook

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"logentry/internal/config"
	"logentry/internal/entry"
	"logentry/internal/logging"
	"logentry/internal/queue"
	"logentry/internal/submit"
)

const userAgent = "logentry-go/2.0"

// HTTPDoer describes the HTTP client used to reach the server.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPDoer replaces the certificate-bearing HTTP client. Certificate
// readability is still checked.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *Client) { c.doer = doer }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client submits entries to the configured logbook server.
type Client struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
	doer   HTTPDoer
	now    func() time.Time
}

var _ submit.Transport = (*Client)(nil)

// NewClient builds a Client. store may be nil when queueing is not wanted;
// Submit then fails instead of deferring.
func NewClient(cfg *config.Config, store *queue.Store, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "logbook"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit delivers req immediately when possible and otherwise defers it to
// the queue, returning 0.
func (c *Client) Submit(ctx context.Context, req *entry.Request, cred submit.Credential) (int64, error) {
	payload, err := c.encode(req)
	if err != nil {
		return 0, err
	}
	certPath := c.certPath(cred)

	number, err := c.deliver(ctx, payload, certPath)
	if err == nil {
		return number, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return 0, err
	}
	if c.store == nil {
		return 0, fmt.Errorf("%w: %w", ErrQueueUnavailable, err)
	}

	item, qerr := c.store.Enqueue(ctx, queue.NewItem{
		Title:    req.Title,
		Logbooks: req.Logbook,
		CertPath: cred.Path,
		Payload:  string(payload),
	})
	if qerr != nil {
		return 0, fmt.Errorf("%w; queueing also failed: %w", err, qerr)
	}
	c.logger.Warn("entry deferred to queue",
		slog.Int64("queue_id", item.ID),
		slog.String("key", item.Key),
		logging.Error(err),
	)
	return 0, nil
}

// SubmitNow delivers req immediately or fails.
func (c *Client) SubmitNow(ctx context.Context, req *entry.Request, cred submit.Credential) (int64, error) {
	payload, err := c.encode(req)
	if err != nil {
		return 0, err
	}
	return c.deliver(ctx, payload, c.certPath(cred))
}

func (c *Client) encode(req *entry.Request) ([]byte, error) {
	var buf bytes.Buffer
	if err := entry.Encode(&buf, req, c.now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Client) certPath(cred submit.Credential) string {
	if cred.IsDefault() {
		return c.cfg.Credentials.DefaultCert
	}
	return cred.Path
}

type serverResponse struct {
	XMLName   xml.Name `xml:"Response"`
	Stat      string   `xml:"stat,attr"`
	Message   string   `xml:"msg"`
	Lognumber int64    `xml:"lognumber"`
}

func (c *Client) deliver(ctx context.Context, payload []byte, certPath string) (int64, error) {
	client, err := c.httpClient(certPath)
	if err != nil {
		return 0, err
	}

	target := fmt.Sprintf("%s/%s.xml", c.cfg.Server.URL, uuid.NewString())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build logbook request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/xml; charset=utf-8")
	httpReq.Header.Set("User-Agent", userAgent)

	started := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, unavailable("%v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, unavailable("read response: %v", err)
	}
	c.logger.Debug("logbook responded",
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode >= http.StatusInternalServerError {
		return 0, unavailable("HTTP %d", resp.StatusCode)
	}

	var parsed serverResponse
	parseErr := xml.Unmarshal(body, &parsed)
	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(parsed.Message)
		if parseErr != nil || msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return 0, &RejectedError{Status: resp.StatusCode, Message: msg}
	}
	if parseErr != nil {
		return 0, fmt.Errorf("decode logbook response: %w", parseErr)
	}
	if !strings.EqualFold(parsed.Stat, "ok") {
		return 0, &RejectedError{Status: resp.StatusCode, Message: strings.TrimSpace(parsed.Message)}
	}
	if parsed.Lognumber <= 0 {
		return 0, errors.New("logbook response carried no lognumber")
	}
	return parsed.Lognumber, nil
}
