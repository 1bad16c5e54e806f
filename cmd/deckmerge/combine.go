package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/deckmerge/internal/export"
	"github.com/dusk-indust/deckmerge/internal/mcptools"
)

func newCombineCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "combine <deck.pptx> <document.docx>",
		Short: "Merge a deck with a document and render the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, release := a.service()
			defer release()

			_, env, _ := svc.Combine(cmd.Context(), nil, mcptools.CombineInput{
				DeckPath:     args[0],
				DocumentPath: args[1],
				OutputPath:   output,
			})
			return writeEnvelope(cmd, env.Success, env.Error, env)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output .pptx path (default: combined_presentation.pptx in the output directory)")
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <outline.json>",
		Short: "Render a combined outline JSON file into a .pptx",
		Long: `Render a combined outline into a .pptx. The file holds either the
outline itself or a combine result, whose combined_outline is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readOutline(args[0])
			if err != nil {
				return err
			}

			svc, _, release := a.service()
			defer release()

			_, env, _ := svc.RenderFromOutline(cmd.Context(), nil, mcptools.RenderInput{
				Outline:    in,
				OutputPath: output,
			})
			return writeEnvelope(cmd, env.Success, env.Error, env)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output .pptx path (default: generated_presentation.pptx in the output directory)")
	return cmd
}

// readOutline accepts a bare outline, a combine result, or the envelope
// printed by "deckmerge combine".
func readOutline(path string) (mcptools.OutlineInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mcptools.OutlineInput{}, fmt.Errorf("read outline: %w", err)
	}

	var wrapped struct {
		mcptools.OutlineInput
		Result *mcptools.OutlineInput `json:"combined_outline"`
		Data   *struct {
			Result *mcptools.OutlineInput `json:"combined_outline"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return mcptools.OutlineInput{}, fmt.Errorf("parse %s: %w", path, err)
	}

	switch {
	case wrapped.Data != nil && wrapped.Data.Result != nil:
		return *wrapped.Data.Result, nil
	case wrapped.Result != nil:
		return *wrapped.Result, nil
	}
	return wrapped.OutlineInput, nil
}

// writeEnvelope prints env and turns a failed envelope into a command error.
func writeEnvelope(cmd *cobra.Command, ok bool, msg string, env any) error {
	if err := export.WriteJSON(cmd.OutOrStdout(), env); err != nil {
		return err
	}
	if !ok {
		return errors.New(msg)
	}
	return nil
}
