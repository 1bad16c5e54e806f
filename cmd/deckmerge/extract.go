package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/deckmerge/internal/export"
	"github.com/dusk-indust/deckmerge/internal/orchestrator"
	"github.com/dusk-indust/deckmerge/internal/outline"
)

func newDeckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deck <file.pptx>...",
		Short: "Print the outline of one or more decks as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := tasksAs(outline.FormatDeck, args)
			return writeBatch(cmd.OutOrStdout(), tasks, a.extractAll(cmd, tasks))
		},
	}
}

func newOutlineCmd(a *app) *cobra.Command {
	var mermaid bool

	cmd := &cobra.Command{
		Use:   "outline <file.docx>...",
		Short: "Print the section outline of one or more documents",
		Long: `Print the section outline of one or more documents as JSON, or with
--mermaid as a Mermaid graph per document.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := tasksAs(outline.FormatDocument, args)
			results := a.extractAll(cmd, tasks)
			if !mermaid {
				return writeBatch(cmd.OutOrStdout(), tasks, results)
			}

			var failed int
			for i, res := range results {
				if res.Err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Path, res.Err)
					continue
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprint(cmd.OutOrStdout(), export.GenerateMermaid(*res.Document))
			}
			return batchError(failed, len(results))
		},
	}
	cmd.Flags().BoolVar(&mermaid, "mermaid", false, "print a Mermaid graph instead of JSON")
	return cmd
}

func newExtractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>...",
		Short: "Print the outlines of a mix of decks and documents as JSON",
		Long: `Print the outlines of a mix of decks and documents as JSON. Each file is
read as a deck or a document according to its extension.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := make([]orchestrator.ExtractTask, len(args))
			for i, path := range args {
				tasks[i] = orchestrator.TaskFor(path)
			}
			return writeBatch(cmd.OutOrStdout(), tasks, a.extractAll(cmd, tasks))
		},
	}
}

// tasksAs reads every path as format, so a file with the wrong extension
// fails on its own without stopping the batch.
func tasksAs(format outline.Format, paths []string) []orchestrator.ExtractTask {
	tasks := make([]orchestrator.ExtractTask, len(paths))
	for i, path := range paths {
		tasks[i] = orchestrator.ExtractTask{Path: path, Format: format}
	}
	return tasks
}

// extractAll runs tasks through a FanOut. Step progress is logged by the
// pipeline; the fan-out only reports files as they are queued.
func (a *app) extractAll(cmd *cobra.Command, tasks []orchestrator.ExtractTask) []orchestrator.ExtractResult {
	p, release := a.pipeline()
	defer release()

	fan := orchestrator.NewFanOut(p, p.Config().Workers, func(ev orchestrator.ProgressEvent) {
		if ev.Status == orchestrator.ProgressPending {
			a.logger.Debug(orchestrator.FormatProgress(ev))
		}
	})
	return fan.Run(cmd.Context(), tasks)
}

func writeBatch(w io.Writer, tasks []orchestrator.ExtractTask, results []orchestrator.ExtractResult) error {
	batch := export.NewBatchExport()
	for i, res := range results {
		batch.Add(res.Path, tasks[i].Format, res.Deck, res.Document, res.Err)
	}
	if err := export.WriteJSON(w, batch); err != nil {
		return err
	}
	return batchError(batch.Failed(), len(results))
}

func batchError(failed, total int) error {
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files failed", failed, total)
}
