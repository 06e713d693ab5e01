package controller

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/day-tracker/pkg/store"
	"github.com/rivo/tview"
)

const (
	colMark = iota
	colTitle
	colDate
	colDays
	colColor
	columnCount
)

// EventContent implements tview.TableContent, which tview.Table uses to update data.
type EventContent struct {
	tview.TableContentReadOnly
	store     *store.Store
	now       func() time.Time
	selecting bool
	// selected holds the indices of the events marked in multi-select mode.
	selected map[int]bool
}

func headerCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).SetExpansion(1).SetTextColor(tcell.ColorYellow).SetSelectable(false)
}

// GetCell returns the cell at the given position or nil if no cell.
func (e *EventContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case colMark:
			return headerCell("").SetExpansion(0)
		case colTitle:
			return headerCell("title").SetExpansion(titleRatio)
		case colDate:
			return headerCell("date")
		case colDays:
			return headerCell("days")
		case colColor:
			return headerCell("").SetExpansion(0)
		}

		return nil
	}

	ev, err := e.store.At(row - 1)
	if err != nil {
		return nil
	}

	now := e.now()

	switch col {
	case colMark:
		return tview.NewTableCell(selectionMark(e.selecting, e.selected[row-1]))
	case colTitle:
		return tview.NewTableCell(tview.Escape(ev.Title)).SetExpansion(titleRatio)
	case colDate:
		return tview.NewTableCell(ev.Date.In(now.Location()).Format(dateLayout)).SetExpansion(1)
	case colDays:
		return tview.NewTableCell(dayLabel(ev, now)).SetExpansion(1).SetTextColor(toneColor(ev.Tone(now)))
	case colColor:
		return tview.NewTableCell("  ").SetBackgroundColor(tcell.GetColor(ev.Color))
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (e *EventContent) GetRowCount() int {
	return e.store.Len() + 1
}

// GetColumnCount returns the number of columns in the table.
func (e *EventContent) GetColumnCount() int {
	return columnCount
}
