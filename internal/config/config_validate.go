// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/tomtom215/motionspace/internal/validation"
)

// Validate checks field ranges through the struct validator, then the
// rules that span more than one field.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateJournal(); err != nil {
		return err
	}

	return c.validateMetrics()
}

func (c *Config) validateJournal() error {
	if !c.Journal.Enabled || c.Journal.InMemory {
		return nil
	}
	if c.Journal.Path == "" {
		return errors.New("journal.path is required when journal.enabled=true and journal.in_memory=false")
	}
	return nil
}

func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	if c.Metrics.Addr == "" {
		return errors.New("metrics.addr is required when metrics.enabled=true")
	}
	if _, _, err := net.SplitHostPort(c.Metrics.Addr); err != nil {
		return fmt.Errorf("metrics.addr %q: %w", c.Metrics.Addr, err)
	}
	return nil
}
