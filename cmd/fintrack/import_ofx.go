package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boltpappu0224/finance-tracker/internal/cli"
	"github.com/boltpappu0224/finance-tracker/internal/dedupe"
	"github.com/boltpappu0224/finance-tracker/internal/ofx"
)

func importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.ofx>",
		Short: "Import transactions from an OFX/QFX statement",
		Long: `Parses an OFX/QFX bank statement into transaction candidates and runs
each through duplicate detection against the stored pool. Accepted
candidates are persisted; confident duplicates are dropped and reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open statement: %w", err)
			}
			defer func() { _ = f.Close() }()

			candidates, err := ofx.NewParser().ParseFile(f)
			if err != nil {
				return err
			}

			if len(candidates) == 0 {
				cmd.Println(cli.WarningStyle.Render("statement contains no transactions"))
				return nil
			}

			if dryRun {
				return printJSON(cmd.OutOrStdout(), candidates)
			}

			if err := saveCandidates(cmd, candidates); err != nil {
				return err
			}

			// A bulk import tends to land near-duplicates next to each other;
			// run the cheap adjacency scan and surface anything suspicious.
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

			pairs := dedupe.ScanAdjacentPairs(pool, dedupe.DefaultScanWindowSize)
			for _, pair := range pairs {
				cmd.Println(cli.WarningStyle.Render(fmt.Sprintf(
					"possible duplicate: %s (%s) vs %s (%s)",
					pair[0].Counterparty, pair[0].Amount, pair[1].Counterparty, pair[1].Amount)))
			}
			if len(pairs) > 0 {
				cmd.Println(cli.SubtleStyle.Render("run 'fintrack reconcile --apply' to merge confirmed duplicates"))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print candidates without persisting")

	return cmd
}
