// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/addrect"
	"github.com/poiesic/addrect/corpus"
	"github.com/poiesic/addrect/index"
	"github.com/poiesic/addrect/match"
	"github.com/poiesic/addrect/storage/badger"
	"github.com/poiesic/addrect/vectorizer"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "addrect",
		Usage: "Correct OCR-corrupted vendor names and addresses against a reference index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "build-index",
				Usage:  "Fit the vectorizer on a reference corpus and build the index",
				Action: buildIndexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "model-dir",
						Aliases:  []string{"m"},
						Usage:    "Directory to write the fitted vectorizer model",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Usage:    "Path to reference corpus in JSON-lines format",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "dimensions",
						Usage: "Embedding dimensionality (clamped to corpus rank)",
						Value: vectorizer.DefaultComponents,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for embedding (0 uses CPU count / 2)",
					},
				},
			},
			{
				Name:   "correct",
				Usage:  "Correct a single vendor/address pair and print the result as JSON",
				Action: correctCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "model-dir",
						Aliases:  []string{"m"},
						Usage:    "Directory holding the fitted vectorizer model",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "vendor",
						Usage:    "Vendor name as read from the document",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "address",
						Usage:    "Address as read from the document",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to YAML matcher configuration",
					},
				},
			},
			{
				Name:   "demo",
				Usage:  "Run the built-in OCR correction scenarios against the sample corpus",
				Action: demoCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to YAML matcher configuration",
					},
					&cli.IntFlag{
						Name:  "dimensions",
						Usage: "Embedding dimensionality (clamped to corpus rank)",
						Value: 64,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildIndexCommand(c *cli.Context) error {
	ctx := context.Background()

	records, err := corpus.LoadJSONL(c.String("corpus"))
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("corpus %s contains no records", c.String("corpus"))
	}

	cfg := vectorizer.DefaultConfig()
	cfg.Components = c.Int("dimensions")
	vec, err := vectorizer.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid vectorizer configuration: %w", err)
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	store, err := badger.NewReferenceStore(backend)
	if err != nil {
		return fmt.Errorf("failed to create reference store: %w", err)
	}
	defer store.Close()

	var opts []index.Option
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, index.WithPoolSize(workers))
	}

	builder, err := index.NewBuilder(store, vec, opts...)
	if err != nil {
		return fmt.Errorf("failed to create index builder: %w", err)
	}
	defer builder.Release()

	fmt.Fprintf(os.Stderr, "Corpus: %s (%d records)\n", c.String("corpus"), len(records))
	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))

	if err := builder.Build(ctx, records); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	if err := vec.Save(c.String("model-dir")); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}

	dims, err := vec.Dimensions()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Model: %s (%d dimensions)\n", c.String("model-dir"), dims)

	return nil
}

func correctCommand(c *cli.Context) error {
	ctx := context.Background()

	matcherConfig, err := loadMatcherConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load matcher configuration: %w", err)
	}

	corrector, err := addrect.NewCorrector(c.String("db"), c.String("model-dir"),
		addrect.WithMatcherConfig(matcherConfig))
	if err != nil {
		return fmt.Errorf("failed to open corrector: %w", err)
	}
	defer corrector.Close()

	result, err := corrector.Correct(ctx, c.String("vendor"), c.String("address"))
	if err != nil {
		return fmt.Errorf("correction failed: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}

func demoCommand(c *cli.Context) error {
	ctx := context.Background()

	matcherConfig, err := loadMatcherConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load matcher configuration: %w", err)
	}

	cfg := vectorizer.DefaultConfig()
	cfg.Components = c.Int("dimensions")
	vec, err := vectorizer.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid vectorizer configuration: %w", err)
	}

	backend, err := badger.OpenBackend("", true)
	if err != nil {
		return fmt.Errorf("failed to open in-memory database: %w", err)
	}
	defer backend.Close()

	store, err := badger.NewReferenceStore(backend)
	if err != nil {
		return fmt.Errorf("failed to create reference store: %w", err)
	}
	defer store.Close()

	builder, err := index.NewBuilder(store, vec)
	if err != nil {
		return fmt.Errorf("failed to create index builder: %w", err)
	}
	defer builder.Release()

	references := corpus.SampleReferences()
	fmt.Fprintf(os.Stderr, "Building index over %d sample references...\n\n", len(references))
	if err := builder.Build(ctx, references); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	matcher, err := match.NewMatcher(store, vec, matcherConfig)
	if err != nil {
		return fmt.Errorf("failed to create matcher: %w", err)
	}

	for _, tc := range corpus.OCRCases() {
		result, err := matcher.Correct(ctx, tc.VendorName, tc.OCRAddress)
		if err != nil {
			return fmt.Errorf("correction failed for %q: %w", tc.VendorName, err)
		}

		fmt.Printf("%s\n", tc.Description)
		fmt.Printf("  query:     %s | %s\n", tc.VendorName, tc.OCRAddress)
		if result.Matched {
			fmt.Printf("  corrected: %s, %s %s (%s)\n",
				result.CorrectedAddress, result.CorrectedCity,
				result.CorrectedPostcode, result.CorrectedCountry)
			fmt.Printf("  confidence: %.3f\n\n", result.Confidence)
		} else {
			fmt.Printf("  no match\n\n")
		}
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
