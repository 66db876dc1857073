// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Package journal keeps an append-only audit trail of processor outputs in
// BadgerDB. The journal is write-only from the pipeline's point of view: it
// is never replayed into a motion space.
package journal

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/motionspace/internal/logging"
	"github.com/tomtom215/motionspace/internal/metrics"
	"github.com/tomtom215/motionspace/internal/motion"
)

var (
	// ErrClosed is returned for operations on a closed journal.
	ErrClosed = errors.New("journal is closed")

	// ErrNoPath is returned when a persistent journal has no path.
	ErrNoPath = errors.New("journal path is required unless in-memory")
)

const (
	prefixOutput = "out:"
	sequenceKey  = "seq:out"

	// sequenceBandwidth is how many sequence numbers badger leases at once.
	sequenceBandwidth = 128

	defaultCloseTimeout = 10 * time.Second
)

// Config controls how the journal database is opened.
type Config struct {
	Path         string
	InMemory     bool
	SyncWrites   bool
	CloseTimeout time.Duration
}

// Record is one journaled output. RunID identifies the session that
// produced it, so records of successive runs can be told apart.
type Record struct {
	Seq    uint64          `json:"seq"`
	RunID  string          `json:"run_id,omitempty"`
	At     time.Time       `json:"at"`
	Output json.RawMessage `json:"output"`
}

// Decode returns the motion output stored in the record.
func (r *Record) Decode() (motion.Output, error) {
	return motion.DecodeOutput(r.Output)
}

// Journal is a BadgerDB-backed output log. Safe for concurrent use.
type Journal struct {
	db     *badger.DB
	seq    *badger.Sequence
	config Config
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the journal described by cfg.
func Open(cfg Config, logger zerolog.Logger) (*Journal, error) {
	if cfg.Path == "" && !cfg.InMemory {
		return nil, ErrNoPath
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("acquire journal sequence: %w", err)
	}

	if cfg.CloseTimeout == 0 {
		cfg.CloseTimeout = defaultCloseTimeout
	}

	logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("journal opened")

	return &Journal{db: db, seq: seq, config: cfg, logger: logger}, nil
}

func outputKey(seq uint64) []byte {
	key := make([]byte, len(prefixOutput)+8)
	copy(key, prefixOutput)
	binary.BigEndian.PutUint64(key[len(prefixOutput):], seq)
	return key
}

// Append encodes o and stores it under the next sequence number, tagged
// with the run id carried by ctx.
func (j *Journal) Append(ctx context.Context, o motion.Output) (uint64, error) {
	start := time.Now()

	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return 0, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	payload, err := motion.EncodeOutput(o)
	if err != nil {
		return 0, err
	}

	seq, err := j.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("next journal sequence: %w", err)
	}

	data, err := json.Marshal(&Record{
		Seq:    seq,
		RunID:  logging.RunIDFromContext(ctx),
		At:     time.Now().UTC(),
		Output: payload,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal journal record: %w", err)
	}

	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(outputKey(seq), data))
	})
	if err != nil {
		return 0, fmt.Errorf("write to BadgerDB: %w", err)
	}

	metrics.RecordJournalAppend(time.Since(start))
	return seq, nil
}

// Iterate calls fn for every record in sequence order. Iteration stops at the
// first error returned by fn.
func (j *Journal) Iterate(ctx context.Context, fn func(*Record) error) error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return ErrClosed
	}

	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixOutput)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal journal record %x: %w", it.Item().Key(), err)
			}
			if err := fn(&rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterate journal: %w", err)
	}
	return nil
}

// Close releases the sequence lease and closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	j.mu.Unlock()

	if err := j.seq.Release(); err != nil {
		j.logger.Warn().Err(err).Msg("release journal sequence")
	}

	done := make(chan error, 1)
	go func() {
		done <- j.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		j.logger.Info().Msg("journal closed")
		return nil
	case <-time.After(j.config.CloseTimeout):
		return fmt.Errorf("journal close timed out after %v", j.config.CloseTimeout)
	}
}
