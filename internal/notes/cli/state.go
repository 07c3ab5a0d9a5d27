package cli

import (
	"github.com/spf13/cobra"

	"stickynotes/internal/notes/domain/entities"
)

func newStateCmd(sess *session, opts *options) *cobra.Command {
	var transparent, dark bool

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show or change display preferences",
		Args:  cobra.NoArgs,
		RunE: sess.run(func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			state := sess.prefs.State()
			if flags.Changed("transparent") || flags.Changed("dark") {
				var err error
				state, err = sess.prefs.Merge(cmd.Context(), func(s *entities.AppState) {
					if flags.Changed("transparent") {
						s.IsTransparent = transparent
					}
					if flags.Changed("dark") {
						s.IsDarkMode = dark
					}
				})
				if err != nil {
					return err
				}
			}
			return printState(cmd.OutOrStdout(), opts.json, state)
		}),
	}

	cmd.Flags().BoolVar(&transparent, "transparent", false, "Make notes semi-transparent")
	cmd.Flags().BoolVar(&dark, "dark", false, "Use the dark theme")

	return cmd
}
