/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/valpere/perevod/internal/detector"
	"github.com/valpere/perevod/internal/lang"
	"github.com/valpere/perevod/internal/pipeline"
	"github.com/valpere/perevod/internal/store"
	"github.com/valpere/perevod/internal/translator"
)

// newDetector builds a lingua detector; building is slow, so callers share one.
var newDetector = detector.New

// openStore opens the configured database, creating its directory.
// An empty db path returns a nil store.
func openStore(dbPath string) (*store.Store, error) {
	if dbPath == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func newClient(host translator.Host) *translator.Client {
	c := translator.NewClient(cfg.Endpoint,
		translator.WithTimeout(cfg.Timeout),
		translator.WithRetryDelay(cfg.RetryDelay),
		translator.WithHost(host),
		translator.WithLogger(logger))
	logger.Debug("translation client ready",
		zap.String("endpoint", c.Endpoint()),
		zap.Stringer("host", host))
	return c
}

// newPipeline wires the client and, when db is set, the glossary, history
// and (with cache enabled) the translation memory.
func newPipeline(c pipeline.Completer, db *store.Store) *pipeline.Pipeline {
	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if db != nil {
		opts = append(opts, pipeline.WithGlossary(db), pipeline.WithRecorder(db))
		if cfg.Cache {
			opts = append(opts, pipeline.WithMemory(db))
		}
	}
	return pipeline.New(c, opts...)
}

// resolvePair turns --from/--to/--swap into a pair. "auto" detects the
// source from text with det, building one when det is nil; an empty target
// means the other language.
func resolvePair(det *detector.Detector, from, to string, swap bool, text string) (lang.Pair, error) {
	var pair lang.Pair
	if from == "auto" {
		if det == nil {
			det = newDetector()
		}
		pair = det.Pair(text)
		logger.Info("detected source language", zap.Stringer("source", pair.Source))
		if to != "" {
			tgt, err := lang.Parse(to)
			if err != nil {
				return lang.Pair{}, fmt.Errorf("target: %w", err)
			}
			pair.Target = tgt
		}
	} else {
		src, err := lang.Parse(from)
		if err != nil {
			return lang.Pair{}, fmt.Errorf("source: %w", err)
		}
		pair.Source = src
		if to == "" {
			pair.Target = lang.Russian
			if src == lang.Russian {
				pair.Target = lang.English
			}
		} else if pair.Target, err = lang.Parse(to); err != nil {
			return lang.Pair{}, fmt.Errorf("target: %w", err)
		}
	}

	if swap {
		pair = pair.Swap()
	}
	return pair, nil
}

// readInput reads the text from the input file, the arguments or stdin,
// in that order.
func readInput(inputFile string, args []string, stdin io.Reader) (string, error) {
	if inputFile != "" {
		b, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(b), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(b), nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return lines, nil
}

// writeOutput writes text to path, or to stdout when path is empty.
func writeOutput(path, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(os.Stdout, text)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
