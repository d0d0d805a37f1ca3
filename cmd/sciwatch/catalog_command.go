package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Publication catalog utilities",
	}
	catalogCmd.AddCommand(newCatalogStatsCommand(ctx))
	return catalogCmd
}

func newCatalogStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog population counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Curated publications", strconv.Itoa(len(store.Curated()))},
				{"Bulk publications", strconv.Itoa(len(store.Bulk()))},
				{"Projects", strconv.Itoa(len(store.Projects()))},
				{"Bulk metadata enriched", yesNo(store.Enriched())},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Population", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
