package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boltpappu0224/finance-tracker/internal/cli"
	"github.com/boltpappu0224/finance-tracker/internal/model"
)

func merchantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "Inspect the merchant catalog",
	}

	cmd.AddCommand(merchantsSearchCmd())
	cmd.AddCommand(merchantsListCmd())

	return cmd
}

func merchantsSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search the merchant catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := newRegistry()
			if err != nil {
				return err
			}

			records := registry.Search(args[0], limit)
			if len(records) == 0 {
				cmd.Println(cli.SubtleStyle.Render("no merchants matched"))
				return nil
			}

			printMerchants(cmd, records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (default 10)")

	return cmd
}

func merchantsListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog merchants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := newRegistry()
			if err != nil {
				return err
			}

			var records []model.MerchantRecord
			if category != "" {
				records = registry.ByCategory(category)
			} else {
				records = registry.Export()
			}

			printMerchants(cmd, records)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only merchants in this category")

	return cmd
}

func printMerchants(cmd *cobra.Command, records []model.MerchantRecord) {
	for _, rec := range records {
		aliases := ""
		if len(rec.Aliases) > 0 {
			aliases = cli.SubtleStyle.Render(fmt.Sprintf(" (%d aliases)", len(rec.Aliases)))
		}
		cmd.Printf("%s %-20s %-16s%s\n", rec.Icon, rec.Name, rec.Category, aliases)
	}
}
