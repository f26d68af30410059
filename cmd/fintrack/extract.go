package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boltpappu0224/finance-tracker/internal/cli"
	"github.com/boltpappu0224/finance-tracker/internal/common"
	"github.com/boltpappu0224/finance-tracker/internal/dedupe"
	"github.com/boltpappu0224/finance-tracker/internal/extract"
	"github.com/boltpappu0224/finance-tracker/internal/model"
)

func extractCmd() *cobra.Command {
	var (
		asJSON bool
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract transaction candidates from notification messages",
		Long: `Reads notification messages (one per line) from a file or stdin, runs
each through the pattern families, and prints the extracted candidates.
Messages matching no known pattern are skipped.

With --save, candidates are checked against the stored pool and accepted
ones are persisted; confident duplicates are reported and dropped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := readMessages(args)
			if err != nil {
				return err
			}

			registry, err := newRegistry()
			if err != nil {
				return err
			}

			extractor := extract.NewExtractor(registry)
			candidates := extractor.ExtractAll(texts)

			common.LogInfo("extraction complete", common.Fields{
				"messages":   len(texts),
				"candidates": len(candidates),
			})

			for _, c := range candidates {
				registry.RecordObservation(c.Counterparty)
			}

			if save {
				return saveCandidates(cmd, candidates)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), candidates)
			}

			printCandidates(cmd, candidates, len(texts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit candidates as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "persist accepted candidates to the database")

	return cmd
}

func readMessages(args []string) ([]string, error) {
	var reader io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open messages file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	var texts []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	return texts, nil
}

func saveCandidates(cmd *cobra.Command, candidates []model.TransactionCandidate) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	pool, err := store.GetTransactions(ctx)
	if err != nil {
		return err
	}

	var accepted, duplicates int
	for i := range candidates {
		verdict, err := dedupe.Check(&candidates[i], pool, dedupe.Config{})
		if err != nil {
			return err
		}

		if verdict.IsDuplicate {
			duplicates++
			cmd.Println(cli.WarningStyle.Render(fmt.Sprintf(
				"duplicate: %s %s %s (confidence %.2f)",
				candidates[i].Counterparty, candidates[i].Amount, candidates[i].Direction, verdict.Confidence)))
			continue
		}

		txn := candidates[i].Stored()
		if err := store.SaveTransaction(ctx, &txn); err != nil {
			return err
		}
		pool = append(pool, txn)
		accepted++
	}

	cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf(
		"saved %d transactions, skipped %d duplicates", accepted, duplicates)))
	return nil
}

func printCandidates(cmd *cobra.Command, candidates []model.TransactionCandidate, total int) {
	cmd.Println(cli.TitleStyle.Render("Extracted Transactions"))

	for _, c := range candidates {
		hint := c.CategoryHint
		if hint == "" {
			hint = "-"
		}
		cmd.Printf("%s  %-8s %10s  %-24s %s\n",
			c.Date.Format("2006-01-02 15:04"),
			c.Direction,
			c.Amount.StringFixed(2),
			c.Counterparty,
			cli.SubtleStyle.Render(hint))
	}

	skipped := total - len(candidates)
	cmd.Println(cli.SubtleStyle.Render(fmt.Sprintf(
		"%d candidates from %d messages (%d unrecognized)", len(candidates), total, skipped)))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
