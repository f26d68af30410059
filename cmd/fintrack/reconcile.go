package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boltpappu0224/finance-tracker/internal/cli"
	"github.com/boltpappu0224/finance-tracker/internal/dedupe"
)

func reconcileCmd() *cobra.Command {
	var (
		apply      bool
		scan       bool
		scanWindow int
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Find and merge duplicate transactions in the stored pool",
		Long: `Runs the batch reconciler over the stored transaction pool, clustering
duplicates and proposing one merged representative per cluster. Without
--apply this is a dry run that only reports the clusters.

With --scan, runs the cheap adjacent-pair pre-filter instead of the full
reconciliation pass.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			if scan {
				pairs := dedupe.ScanAdjacentPairs(pool, scanWindow)
				cmd.Println(cli.TitleStyle.Render("Adjacent-Pair Scan"))
				for _, pair := range pairs {
					cmd.Printf("%s  %s %s  ~  %s  %s %s\n",
						pair[0].Date.Format("2006-01-02"), pair[0].Counterparty, pair[0].Amount,
						pair[1].Date.Format("2006-01-02"), pair[1].Counterparty, pair[1].Amount)
				}
				cmd.Println(cli.SubtleStyle.Render(fmt.Sprintf(
					"%d possible duplicate pairs in %d transactions", len(pairs), len(pool))))
				return nil
			}

			result := dedupe.ReconcileAll(pool)

			cmd.Println(cli.TitleStyle.Render("Reconciliation"))
			for _, group := range result.DuplicateGroups {
				cmd.Println(cli.BoldStyle.Render(fmt.Sprintf(
					"group of %d: %s %s", len(group), group[0].Counterparty, group[0].Amount)))
				for _, txn := range group {
					cmd.Printf("  %s  %s  %s (%s)\n",
						txn.ID, txn.Date.Format("2006-01-02 15:04"), txn.Counterparty, txn.Origin)
				}
			}

			cmd.Println(cli.SubtleStyle.Render(fmt.Sprintf(
				"%d transactions -> %d records, %d duplicate groups",
				len(pool), len(result.Merged), len(result.DuplicateGroups))))

			if !apply {
				if len(result.DuplicateGroups) > 0 {
					cmd.Println(cli.SubtleStyle.Render("dry run; pass --apply to merge"))
				}
				return nil
			}

			for _, merged := range result.Merged {
				if merged.Provenance.MergeCount == 0 {
					continue
				}
				if err := store.ApplyMerge(ctx, merged); err != nil {
					return err
				}
			}

			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"merged %d duplicate groups", len(result.DuplicateGroups))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "apply the proposed merges to the database")
	cmd.Flags().BoolVar(&scan, "scan", false, "run the adjacent-pair pre-filter instead")
	cmd.Flags().IntVar(&scanWindow, "scan-window", dedupe.DefaultScanWindowSize, "adjacency window for --scan")

	return cmd
}
