package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbaille/worklog/internal/domain"
)

func tagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Add, remove or list tags",
		Example: `  worklog tag add php <id>        adds php tag to work log
  worklog tag remove php <id>     removes php tag from work log
  worklog tag list                lists all available tags`,
	}

	cmd.AddCommand(tagAddCmd(a))
	cmd.AddCommand(tagRemoveCmd(a))
	cmd.AddCommand(tagListCmd(a))
	return cmd
}

func tagAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add [tag] [id]",
		Short: "Add a tag to a work log",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.retag(args[1], func(l *domain.Log) { l.Tags.Add(args[0]) })
		},
	}
}

func tagRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove [tag] [id]",
		Aliases: []string{"rm", "del"},
		Short:   "Remove a tag from a work log",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.retag(args[1], func(l *domain.Log) { l.Tags.Remove(args[0]) })
		},
	}
}

func tagListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"all"},
		Short:   "List all tags of valid work logs, most used first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.syncCatalog()
			if err != nil {
				return err
			}
			defer cat.Close()

			counts, err := cat.TagCounts()
			if err != nil {
				return err
			}

			for _, tc := range counts {
				fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", tc.Count, tc.Tag)
			}
			return nil
		},
	}
}

// retag loads a log, applies change to it and writes it back
func (a *app) retag(rawID string, change func(*domain.Log)) error {
	s, l, err := a.loadLog(rawID)
	if err != nil {
		return err
	}

	change(&l)

	if err := s.Update(l); err != nil {
		return fmt.Errorf("failed to update log with id %d: %w", l.ID, err)
	}
	return nil
}
