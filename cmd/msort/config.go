// Copyright 2025 The parallel-algorithms Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/portscher/parallel-algorithms/mergesort"
)

// tuning holds the knobs shared between flags and the YAML tuning file.
type tuning struct {
	Threshold int   `yaml:"threshold"`
	Workers   int   `yaml:"workers"`
	Seed      int64 `yaml:"seed"`
}

func defaultTuning() tuning {
	return tuning{
		Threshold: mergesort.DefaultThreshold,
		Workers:   0,
		Seed:      0,
	}
}

// loadTuning reads a YAML tuning file. Keys left out of the file keep their
// defaults.
func loadTuning(path string) (tuning, error) {
	t := defaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}
	if t.Threshold < 1 {
		return t, fmt.Errorf("tuning file %s: threshold must be >= 1, got %d", path, t.Threshold)
	}
	return t, nil
}

// resolveTuning merges defaults, the optional tuning file and the command
// line, in that order: a flag set explicitly on the command line wins over
// the file.
func resolveTuning(cmd *cobra.Command) (tuning, error) {
	t := defaultTuning()

	if flagConfig != "" {
		loaded, err := loadTuning(flagConfig)
		if err != nil {
			return t, err
		}
		t = loaded
	}

	if cmd.Flags().Changed("threshold") {
		if flagThreshold < 1 {
			return t, fmt.Errorf("--threshold must be >= 1, got %d", flagThreshold)
		}
		t.Threshold = flagThreshold
	}
	if cmd.Flags().Changed("workers") {
		t.Workers = flagWorkers
	}
	if cmd.Flags().Changed("seed") {
		t.Seed = flagSeed
	}
	return t, nil
}
