package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"logentry/internal/entry"
	"logentry/internal/logbook"
	"logentry/internal/queue"
)

func newQueueCommand(app *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and deliver entries deferred while the server was unreachable",
	}

	queueCmd.AddCommand(newQueueListCommand(app))
	queueCmd.AddCommand(newQueueFlushCommand(app))
	queueCmd.AddCommand(newQueueRemoveCommand(app))

	return queueCmd
}

func (c *commandContext) withStore(fn func(*queue.Store) error) error {
	store, err := c.openStore()
	if err != nil {
		return fmt.Errorf("open entry queue: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newQueueListCommand(app *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deferred entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withStore(func(store *queue.Store) error {
				items, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				table := renderTable(
					[]string{"ID", "Title", "Logbooks", "Created", "Attempts", "Last Error"},
					buildQueueListRows(items),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprint(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func buildQueueListRows(items []*queue.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			truncate(item.Title, 40),
			item.Logbooks,
			formatTimestamp(item.CreatedAt),
			strconv.Itoa(item.Attempts),
			truncate(item.LastError, 50),
		})
	}
	return rows
}

func newQueueFlushCommand(app *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Submit every deferred entry now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.ensureConfig()
			if err != nil {
				return err
			}
			return app.withStore(func(store *queue.Store) error {
				client := logbook.NewClient(cfg, store, app.log())
				results, err := client.Flush(cmd.Context())
				if errors.Is(err, queue.ErrFlushInProgress) {
					return fmt.Errorf("%w; try again once it finishes", err)
				}

				out := cmd.OutOrStdout()
				failed := 0
				for _, r := range results {
					if r.Delivered() {
						fmt.Fprintf(out, "Entry %d (%s) was saved with lognumber %d\n", r.Item.ID, r.Item.Title, r.Lognumber)
						continue
					}
					failed++
					fmt.Fprintf(out, "Entry %d (%s) remains queued: %v\n", r.Item.ID, r.Item.Title, r.Err)
				}
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Fprintln(out, "Queue is empty")
					return nil
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d queued entries could not be delivered", failed, len(results))
				}
				return nil
			})
		},
	}
}

func newQueueRemoveCommand(app *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Discard a deferred entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || id <= 0 {
				return &entry.ParseError{Msg: fmt.Sprintf("invalid queue id %q", args[0])}
			}
			return app.withStore(func(store *queue.Store) error {
				removed, err := store.Remove(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("queued entry %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed queued entry %d\n", id)
				return nil
			})
		},
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func truncate(value string, limit int) string {
	runes := []rune(strings.TrimSpace(value))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit-1]) + "…"
}
