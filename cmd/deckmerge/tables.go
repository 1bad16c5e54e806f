package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/deckmerge/internal/export"
	"github.com/dusk-indust/deckmerge/internal/outline"
)

func newTablesCmd(a *app) *cobra.Command {
	var (
		docPath string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "tables <deck.pptx>",
		Short: "Export deck tables and document table structures to an .xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, release := a.pipeline()
			defer release()

			deck, err := p.ExtractDeck(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var doc *outline.DocumentOutline
			if docPath != "" {
				if doc, err = p.ExtractDocument(cmd.Context(), docPath); err != nil {
					return err
				}
			}

			if err := export.WriteTables(output, deck, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&docPath, "doc", "", "document whose table structures are added as a second sheet")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output .xlsx path")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
