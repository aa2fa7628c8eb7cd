package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbaille/worklog/internal/catalog"
	"github.com/pbaille/worklog/internal/filter"
)

const topTags = 10

// syncCatalog mirrors the current valid logs into the catalog.
// The caller must Close the returned catalog.
func (a *app) syncCatalog() (*catalog.Catalog, error) {
	logs, err := a.getLogs(filter.OnlyValid())
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(a.cfg.CatalogPath(), a.logger)
	if err != nil {
		return nil, err
	}

	if err := cat.Sync(logs); err != nil {
		cat.Close()
		return nil, err
	}
	return cat, nil
}

func reindexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the reporting catalog from the work log files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.syncCatalog()
			if err != nil {
				return err
			}
			defer cat.Close()

			n, err := cat.Count()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d work logs into %s\n", n, a.cfg.CatalogPath())
			return nil
		},
	}
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show work log counts per year and the most used tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.syncCatalog()
			if err != nil {
				return err
			}
			defer cat.Close()

			years, err := cat.YearCounts()
			if err != nil {
				return err
			}
			tags, err := cat.TagCounts()
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			total := 0
			for _, yc := range years {
				total += yc.Count
			}

			fmt.Fprintf(p.w, "%d work logs\n\n", total)
			for _, yc := range years {
				fmt.Fprintf(p.w, "%s %d\n", p.year.Render(fmt.Sprintf("%d:", yc.Year)), yc.Count)
			}

			if len(tags) > 0 {
				fmt.Fprintln(p.w)
			}
			for i, tc := range tags {
				if i == topTags {
					break
				}
				fmt.Fprintf(p.w, "%5d %s\n", tc.Count, tc.Tag)
			}
			return nil
		},
	}
}
