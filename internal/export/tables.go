package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dusk-indust/deckmerge/internal/outline"
)

// Sheet names of the tables workbook.
const (
	DeckSheet     = "Deck Tables"
	DocumentSheet = "Document Tables"
)

// WriteTables saves a workbook with every deck table grid and, when doc is
// non-nil, a summary of the document's tables. Each deck table is
// preceded by a "Slide N / Table K" label row and followed by a blank row.
func WriteTables(path string, deck *outline.DeckOutline, doc *outline.DocumentOutline) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DeckSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	row := 1
	if deck != nil {
		for _, s := range deck.Slides {
			for k, grid := range s.Tables {
				if err := setRow(f, DeckSheet, row, []string{fmt.Sprintf("Slide %d / Table %d", s.Index, k+1)}); err != nil {
					return err
				}
				row++
				for _, cells := range grid {
					if err := setRow(f, DeckSheet, row, cells); err != nil {
						return err
					}
					row++
				}
				row++
			}
		}
	}

	if doc != nil {
		if _, err := f.NewSheet(DocumentSheet); err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}
		if err := setRow(f, DocumentSheet, 1, []string{"Table", "Rows", "Columns", "Header"}); err != nil {
			return err
		}
		for i, ts := range doc.TableStructures {
			values := []any{ts.Number, ts.RowCount, ts.ColumnCount}
			for _, h := range ts.HeaderCells {
				values = append(values, h)
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(DocumentSheet, cell, &values); err != nil {
				return fmt.Errorf("write %s row %d: %w", DocumentSheet, i+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
