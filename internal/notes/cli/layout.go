package cli

import (
	"github.com/spf13/cobra"
)

func newLayoutCmd(sess *session, opts *options) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show initial card positions for a viewport",
		Args:  cobra.NoArgs,
		RunE: sess.run(func(cmd *cobra.Command, _ []string) error {
			notes := sess.repo.Notes()
			ids := make([]string, 0, len(notes))
			for _, n := range notes {
				ids = append(ids, n.ID)
			}
			return printLayout(cmd.OutOrStdout(), opts.json, sess.positioner.Place(ids, width, height))
		}),
	}

	cmd.Flags().IntVar(&width, "width", 1280, "Viewport width in pixels")
	cmd.Flags().IntVar(&height, "height", 800, "Viewport height in pixels")

	return cmd
}
