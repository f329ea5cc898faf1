package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ako-backing-tracks/scoreengrave/score"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <score.yaml>",
		Short: "Parse a score description and report errors, without laying it out",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			doc, err := score.LoadDocument(args[0])
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}
			n := 0
			for _, instr := range doc.Instruments {
				for _, staff := range instr.Staves {
					n += len(staff.Objects)
				}
			}
			fmt.Fprintf(c.OutOrStdout(), "ok: %d instrument(s), %d staff-object(s)\n", len(doc.Instruments), n)
			return nil
		},
	}
}
