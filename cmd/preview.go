package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ako-backing-tracks/scoreengrave/preview"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <score.yaml>",
		Short: "Interactively browse a computed layout's pages and systems",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			doc, err := score.LoadDocument(args[0])
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			return preview.RunOrFallback(c.OutOrStdout(), filepath.Base(args[0]), doc)
		},
	}
}
