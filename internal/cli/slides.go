package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/airdeck/internal/output"
	"github.com/ayusman/airdeck/internal/slides"
)

func NewSlidesCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slides [slides-dir]",
		Short: "List the slides in presentation order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())

			dir := deps.Config.SlidesDir
			if len(args) == 1 {
				dir = args[0]
			}

			files, err := slides.List(dir)
			if errors.Is(err, os.ErrNotExist) || (err == nil && len(files) == 0) {
				formatter.Info("No slides found in " + dir)
				return nil
			}
			if err != nil {
				return err
			}

			formatter.SlideListHeader(dir, len(files))
			for i, name := range files {
				formatter.SlideListItem(i, name)
			}
			return nil
		},
	}

	return cmd
}
