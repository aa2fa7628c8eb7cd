package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pbaille/worklog/internal/domain"
	"github.com/pbaille/worklog/internal/filter"
)

const defaultSubjectWidth = 30

// printer renders log lines, colored when w is a terminal
type printer struct {
	w            io.Writer
	subjectWidth int
	subject      lipgloss.Style
	tags         lipgloss.Style
	year         lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:            w,
		subjectWidth: subjectWidth(w),
		subject:      r.NewStyle().Foreground(lipgloss.Color("3")),
		tags:         r.NewStyle().Faint(true),
		year:         r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	}
}

// subjectWidth shrinks the subject column on narrow terminals
func subjectWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultSubjectWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols >= 80 {
		return defaultSubjectWidth
	}
	return max(10, cols-50)
}

// Log prints "<id> <date>  <subject>  [tags]"
func (p *printer) Log(l domain.Log) {
	id := "???"
	if l.ID > 0 {
		id = fmt.Sprint(l.ID)
	}
	subject := fmt.Sprintf("%-*s", p.subjectWidth, truncate(l.Subject, p.subjectWidth))

	fmt.Fprintf(p.w, "%-10s%s  %s  %s\n",
		id,
		domain.FormatDate(l.CreatedAt),
		p.subject.Render(subject),
		p.tags.Render("["+l.Tags.String()+"]"),
	)
}

func (p *printer) Logs(logs []domain.Log) {
	for _, l := range logs {
		p.Log(l)
	}
}

func (p *printer) Year(year int) {
	fmt.Fprintln(p.w, p.year.Render(fmt.Sprintf("%d:", year)))
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all valid work logs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := a.getLogs(filter.OnlyValid())
			if err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).Logs(logs)
			return nil
		},
	}
}

func brokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "broken",
		Short: "List all invalid work logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := a.getLogs(filter.OnlyInvalid())
			if err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).Logs(logs)
			return nil
		},
	}
}

func searchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query...]",
		Short: "Search work logs by a filter: tag:php -tag:javascript subject:login",
		Example: `  worklog search "tag:php -tag:draft subject:login"
  worklog search -- tag:php -tag:draft`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := filter.Parse(strings.Join(args, " "))
			for _, token := range f.Skipped {
				a.logger.Warn("ignored query token", "token", token)
			}

			logs, err := a.getLogs(filter.OnlyValid())
			if err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).Logs(f.Select(logs))
			return nil
		},
	}
}

func yearlyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "yearly",
		Short: "Show a breakdown report by year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := a.getLogs(filter.OnlyValid())
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			prev := 0
			for _, l := range logs {
				year := domain.Year(l.CreatedAt)
				if year != prev {
					if prev != 0 {
						fmt.Fprintln(p.w)
					}
					p.Year(year)
					prev = year
				}
				p.Log(l)
			}
			return nil
		},
	}
}
