package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pbaille/worklog/internal/domain"
	"github.com/pbaille/worklog/internal/editor"
	"github.com/pbaille/worklog/internal/serializer"
	"github.com/pbaille/worklog/internal/store"
)

func newCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Add a new work log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.getStorage()
			if err != nil {
				return err
			}

			var hs serializer.Human
			l, sess, err := a.editContent(hs.Template(time.Now()))
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := domain.Validate(l); err != nil {
				sess.Keep()
				return fmt.Errorf("the work log is invalid: %w. Please fix! Your work log is backed up here: %s", err, sess.Path())
			}

			saved, err := s.Save(l)
			if err != nil {
				sess.Keep()
				return fmt.Errorf("failed to save the work log: %w. Your work log is backed up here: %s", err, sess.Path())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added work log: %d\n", saved.ID)
			return nil
		},
	}
}

func editCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a work log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, l, err := a.loadLog(args[0])
			if err != nil {
				return err
			}

			var hs serializer.Human
			updated, sess, err := a.editContent(hs.Serialize(l))
			if err != nil {
				return err
			}
			defer sess.Close()

			updated.ID = l.ID
			if err := s.Update(updated); err != nil {
				sess.Keep()
				return fmt.Errorf("failed to save the work log: %w. Your work log is backed up here: %s", err, sess.Path())
			}
			return nil
		},
	}
}

func viewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view [id]",
		Short: "View a work log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := a.loadLog(args[0])
			if err != nil {
				return err
			}

			var hs serializer.Human
			fmt.Fprintln(cmd.OutOrStdout(), hs.Serialize(l))
			return nil
		},
	}
}

func rmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a work log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.getStorage()
			if err != nil {
				return err
			}

			id, err := store.ParseID(args[0])
			if err != nil {
				return err
			}

			err = s.Delete(id)
			if errors.Is(err, store.ErrNotFound) {
				a.logger.Warn("nothing to remove", "id", id)
				return nil
			}
			return err
		},
	}
}

// loadLog opens the storage and loads the log whose id is given as text
func (a *app) loadLog(rawID string) (*store.Storage, domain.Log, error) {
	s, err := a.getStorage()
	if err != nil {
		return nil, domain.Log{}, err
	}

	id, err := store.ParseID(rawID)
	if err != nil {
		return nil, domain.Log{}, err
	}

	l, err := s.LoadByID(id)
	if err != nil {
		return nil, domain.Log{}, fmt.Errorf("failed to load work log by id %d: %w", id, err)
	}
	return s, l, nil
}

// editContent hands initial to the editor and decodes the result.
// The caller must Close the returned session.
func (a *app) editContent(initial string) (domain.Log, *editor.Session, error) {
	sess, err := editor.NewSession(a.cfg.Editor, initial)
	if err != nil {
		return domain.Log{}, nil, err
	}

	content, err := sess.Edit()
	if err != nil {
		sess.Keep()
		sess.Close()
		return domain.Log{}, nil, fmt.Errorf("failed to obtain content from the editor which is stored in the file %s: %w", sess.Path(), err)
	}

	var hs serializer.Human
	l, diags := hs.Unserialize(content)
	for _, d := range diags {
		a.logger.Warn("ignored line", "line", d.Line, "text", d.Text, "reason", d.Reason)
	}
	return l, sess, nil
}
