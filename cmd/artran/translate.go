package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/artran"
)

// maxLineSize bounds a single JSON lines record.
const maxLineSize = 16 << 20

type translateFlags struct {
	to     string
	jsonl  bool
	output string
	stats  bool
}

func (a *app) translateCommand() *cobra.Command {
	var f translateFlags

	cmd := &cobra.Command{
		Use:   "translate [file|-]",
		Short: "Translate a file of article records",
		Long: `Reads a JSON array of records (or one record per line with --jsonl)
from a file or stdin and writes the translated records.

Fields that cannot be translated are left empty and logged to stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTranslate(cmd.Context(), args, f)
		},
	}

	cmd.Flags().StringVar(&f.to, "to", "", "Target language code (e.g., en, pt-BR)")
	cmd.Flags().BoolVar(&f.jsonl, "jsonl", false, "Read and write JSON lines instead of a JSON array")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "Print cache statistics to stderr")

	return cmd
}

func (a *app) runTranslate(ctx context.Context, args []string, f translateFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.to == "" {
		return fmt.Errorf("--to is required")
	}

	cfg, err := loadConfig(a.v)
	if err != nil {
		return err
	}

	input, err := a.readInput(args)
	if err != nil {
		return err
	}

	records, err := decodeRecords(input, f.jsonl)
	if err != nil {
		return err
	}

	translator, closeAll, err := a.translator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAll()

	start := time.Now()
	// Nil records yield placeholders and are logged by the translator.
	results, _ := translator.TranslateAll(ctx, records, f.to)
	elapsed := time.Since(start)

	out := make([]*artran.Record, len(results))
	failed := 0
	for i, res := range results {
		out[i] = res.Record
		failed += len(res.Failed())
	}

	var w io.Writer = a.stdout
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := encodeRecords(w, out, f.jsonl); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if f.stats {
		s := translator.Cache().Stats()
		fmt.Fprintf(a.stderr, "\nDone in %v\n", elapsed.Round(time.Millisecond))
		fmt.Fprintf(a.stderr, "  Records:        %d\n", len(records))
		fmt.Fprintf(a.stderr, "  Failed fields:  %d\n", failed)
		fmt.Fprintf(a.stderr, "  Cache hits:     %d\n", s.Hits)
		fmt.Fprintf(a.stderr, "  Cache misses:   %d\n", s.Misses)
		fmt.Fprintf(a.stderr, "  Provider calls: %d\n", s.Loads)
		fmt.Fprintf(a.stderr, "  Evictions:      %d\n", s.Evictions)
	}

	return nil
}

func (a *app) readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

func decodeRecords(data []byte, jsonl bool) ([]*artran.Record, error) {
	if !jsonl {
		var records []*artran.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decoding records: %w", err)
		}
		return records, nil
	}

	var records []*artran.Record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		var rec artran.Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("decoding record on line %d: %w", line, err)
		}
		records = append(records, &rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return records, nil
}

func encodeRecords(w io.Writer, records []*artran.Record, jsonl bool) error {
	enc := json.NewEncoder(w)
	if jsonl {
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	}

	if records == nil {
		records = []*artran.Record{}
	}
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
