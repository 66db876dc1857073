// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/motionspace/internal/journal"
	"github.com/tomtom215/motionspace/internal/logging"
	"github.com/tomtom215/motionspace/internal/pipeline"
)

// errStopDump ends iteration once the requested number of records is out.
var errStopDump = errors.New("dump limit reached")

func newJournalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect the output journal",
	}
	cmd.AddCommand(newJournalDumpCmd(a))
	return cmd
}

func newJournalDumpCmd(a *app) *cobra.Command {
	var (
		path  string
		runID string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print journal records as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *a.cfg
			if path != "" {
				cfg.Journal.Path = path
			}
			if cfg.Journal.Path == "" {
				return journal.ErrNoPath
			}
			cfg.Journal.InMemory = false
			if _, err := os.Stat(cfg.Journal.Path); err != nil {
				return fmt.Errorf("journal %s: %w", cfg.Journal.Path, err)
			}

			j, err := pipeline.OpenJournal(&cfg, logging.Logger())
			if err != nil {
				return err
			}
			defer j.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			enc := json.NewEncoder(a.stdout)
			written := 0
			err = j.Iterate(ctx, func(r *journal.Record) error {
				if runID != "" && r.RunID != runID {
					return nil
				}
				if limit > 0 && written >= limit {
					return errStopDump
				}
				if err := enc.Encode(r); err != nil {
					return fmt.Errorf("write record %d: %w", r.Seq, err)
				}
				written++
				return nil
			})
			if err != nil && !errors.Is(err, errStopDump) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Journal directory (default: journal.path from config)")
	cmd.Flags().StringVar(&runID, "run", "", "Only print records of this run id")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many records (0 = all)")
	return cmd
}
