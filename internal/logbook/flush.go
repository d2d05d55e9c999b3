package logbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"logentry/internal/logging"
	"logentry/internal/queue"
)

// FlushResult records what happened to one deferred entry.
type FlushResult struct {
	Item      *queue.Item
	Lognumber int64
	Err       error
}

// Delivered reports whether the entry reached the server.
func (r FlushResult) Delivered() bool { return r.Err == nil }

// Flush retries every deferred entry in enqueue order. Delivered entries are
// removed; failures stay queued with the attempt recorded. Only one flush may
// run against a queue directory at a time.
func (c *Client) Flush(ctx context.Context) ([]FlushResult, error) {
	if c.store == nil {
		return nil, ErrQueueUnavailable
	}
	lock, err := queue.AcquireLock(c.cfg.Queue.Dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			c.logger.Warn("release flush lock failed", logging.Error(err))
		}
	}()

	items, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list queued entries: %w", err)
	}

	results := make([]FlushResult, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		certPath := item.CertPath
		if certPath == "" {
			certPath = c.cfg.Credentials.DefaultCert
		}

		number, sendErr := c.deliver(ctx, []byte(item.Payload), certPath)
		result := FlushResult{Item: item, Lognumber: number, Err: sendErr}
		results = append(results, result)

		if sendErr != nil {
			if errors.Is(sendErr, context.Canceled) || errors.Is(sendErr, context.DeadlineExceeded) {
				return results, sendErr
			}
			c.logger.Warn("queued entry still undeliverable",
				slog.Int64("queue_id", item.ID),
				slog.String("title", item.Title),
				logging.Error(sendErr),
			)
			if err := c.store.RecordAttempt(ctx, item.ID, sendErr); err != nil {
				return results, fmt.Errorf("record attempt for %d: %w", item.ID, err)
			}
			continue
		}

		c.logger.Info("queued entry delivered",
			slog.Int64("queue_id", item.ID),
			slog.Int64("lognumber", number),
		)
		if _, err := c.store.Remove(ctx, item.ID); err != nil {
			return results, fmt.Errorf("remove delivered entry %d: %w", item.ID, err)
		}
	}
	return results, nil
}
