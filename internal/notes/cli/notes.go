package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stickynotes/internal/notes/app/validation"
	"stickynotes/internal/notes/domain/entities"
)

// ErrInvalidInput возвращается, когда флаги не проходят проверку.
var ErrInvalidInput = errors.New("invalid input")

func newAddCmd(sess *session, opts *options) *cobra.Command {
	var req validation.CreateNoteRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: sess.run(func(cmd *cobra.Command, _ []string) error {
			if err := validate(&req); err != nil {
				return err
			}

			note, err := sess.repo.AddNote(cmd.Context(), req.Input())
			if err != nil {
				return err
			}
			return printNotes(cmd.OutOrStdout(), opts.json, note)
		}),
	}

	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "Note title (default: "+entities.DefaultTitle+")")
	cmd.Flags().StringVarP(&req.Content, "content", "c", "", "Note text")
	cmd.Flags().StringVar(&req.Color, "color", "", "Palette color, e.g. #dbeafe")

	return cmd
}

func newListCmd(sess *session, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: sess.run(func(cmd *cobra.Command, _ []string) error {
			return printNotes(cmd.OutOrStdout(), opts.json, sess.repo.Notes()...)
		}),
	}
}

func newSearchCmd(sess *session, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find notes whose title or text contains the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: sess.run(func(cmd *cobra.Command, args []string) error {
			return printNotes(cmd.OutOrStdout(), opts.json, sess.repo.SearchNotes(strings.Join(args, " "))...)
		}),
	}
}

func newEditCmd(sess *session, opts *options) *cobra.Command {
	var title, content, color string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note's title, text or color",
		Args:  cobra.ExactArgs(1),
		RunE: sess.run(func(cmd *cobra.Command, args []string) error {
			var req validation.UpdateNoteRequest
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("content") {
				req.Content = &content
			}
			if cmd.Flags().Changed("color") {
				req.Color = &color
			}
			if err := validate(&req); err != nil {
				return err
			}

			note, found, err := sess.repo.UpdateNote(cmd.Context(), args[0], req.Update())
			if err != nil {
				return err
			}
			if !found {
				_, err := fmt.Fprintf(cmd.ErrOrStderr(), "note %s not found, nothing changed\n", args[0])
				return err
			}
			return printNotes(cmd.OutOrStdout(), opts.json, note)
		}),
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New text")
	cmd.Flags().StringVar(&color, "color", "", "New palette color")

	return cmd
}

func newRmCmd(sess *session, _ *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: sess.run(func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				found, err := sess.repo.DeleteNote(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !found {
					if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "note %s not found\n", id); err != nil {
						return err
					}
				}
			}
			return nil
		}),
	}
}

func validate(req any) error {
	violations := validation.NewValidator().Validate(req)
	if violations == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(violations, "; "))
}
