package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ako-backing-tracks/scoreengrave/export"
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/layout"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

func newRenderCmd() *cobra.Command {
	var outputPath string

	c := &cobra.Command{
		Use:   "render <score.yaml>",
		Short: "Lay out a score description and write the resulting page tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			doc, err := score.LoadDocument(args[0])
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			pages, err := renderAllPages(doc)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			out := c.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
				defer f.Close()
				out = f
			}

			return export.Write(out, pages)
		},
	}

	c.Flags().StringVarP(&outputPath, "output", "o", "", "write JSON to this file instead of stdout")
	return c
}

// renderAllPages drives a ScoreLayouter to completion, allocating a new
// page box from doc's page geometry each time the previous one fills up
// (spec §4.8 phase 2's "caller must allocate a new page and call again").
func renderAllPages(doc *score.Document) ([]*geom.Box, error) {
	sl := layout.NewScoreLayouter(doc)
	pageSize := geom.Size{
		W: doc.Options.Page.Size.Width * score.DefaultLogicalUnitsPerTenth,
		H: doc.Options.Page.Size.Height * score.DefaultLogicalUnitsPerTenth,
	}

	var pages []*geom.Box
	for {
		page := geom.NewBox(geom.BoxDocPage, geom.Rect{Size: pageSize})
		result := sl.LayoutInBox(page)
		pages = append(pages, page)
		if result.Err != nil {
			return pages, result.Err
		}
		if result.Finished {
			return pages, nil
		}
	}
}
