package controller

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/day-tracker/pkg/store"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	pageList    = "list"
	pageForm    = "form"
	pageSort    = "sort"
	pageMessage = "message"

	headerHeight  = 4
	detailsHeight = 3
)

// Controller mediates between the event store and the terminal view.
type Controller struct {
	ctx   context.Context
	store *store.Store
	now   func() time.Time

	app     *tview.Application
	pages   *tview.Pages
	header  *tview.Table
	table   *tview.Table
	content *EventContent
	details *tview.TextView
	sorting *tview.Modal

	form       *tview.Form
	titleField *tview.InputField
	dateField  *tview.InputField

	events      map[rune]KeyEvent
	showDetails bool
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller for the events in s.
func NewController(ctx context.Context, s *store.Store) (*Controller, error) {
	if s == nil {
		return nil, fmt.Errorf("error creating controller: no event store")
	}

	c := Controller{
		ctx:   ctx,
		store: s,
		now:   time.Now,
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
	}

	c.content = &EventContent{
		store:    s,
		now:      c.now,
		selected: map[int]bool{},
	}

	c.initEvents()

	c.pages.AddPage(pageList, c.getListGrid(), true, true)
	c.pages.AddPage(pageForm, c.getFormGrid(), true, false)
	c.sorting = c.getSortModal()
	c.pages.AddPage(pageSort, c.sorting, false, false)

	return &c, nil
}

// Go starts the app and blocks until it is stopped.
func (c *Controller) Go() error {
	c.showList()

	if err := c.app.SetRoot(c.pages, true).Run(); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}

	return nil
}

func (c *Controller) getListGrid() *tview.Grid {
	c.header = tview.NewTable().SetBorders(false).SetSelectable(false, false)
	c.table = c.getTable()
	c.details = tview.NewTextView().SetDynamicColors(true)
	c.details.SetScrollable(false)

	grid := tview.NewGrid().SetBorders(true).SetRows(headerHeight, 0, detailsHeight)

	grid.AddItem(c.header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.table, 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.details, 2, 0, 1, 1, 0, 0, false)

	return grid
}

func (c *Controller) getTable() *tview.Table {
	table := tview.NewTable().SetBorders(false)

	table.SetContent(c.content)
	table.SetSelectable(true, false)
	table.SetFixed(1, 0)

	table.SetSelectionChangedFunc(func(row, col int) {
		c.updateDetails()
	})

	table.SetSelectedFunc(func(row, col int) {
		c.showDetails = !c.showDetails
		c.updateDetails()
	})

	return table
}

// updateHeader shows the event count and the keyboard shortcuts, sorted alphabetically
// and laid out in columns below the count.
func (c *Controller) updateHeader() {
	c.header.Clear()

	title := fmt.Sprintf("[yellow]%d events", c.store.Len())
	if c.content.selecting {
		title += fmt.Sprintf(" [white](%d selected)", len(c.content.selected))
	}

	c.header.SetCell(0, 0, tview.NewTableCell(title))

	shortcuts := []string{}
	for key, event := range c.events {
		shortcuts = append(shortcuts, fmt.Sprintf("[orange]<%s>[white] %s", keyName(key), event.Description))
	}

	shortcuts = append(shortcuts, "[orange]<Enter>[white] Details")

	sort.Strings(shortcuts)

	rows := headerHeight - 1
	for i, text := range shortcuts {
		c.header.SetCell(i%rows+1, i/rows, tview.NewTableCell(text).SetExpansion(1))
	}
}

func (c *Controller) updateDetails() {
	idx := c.currentIndex()

	if !c.showDetails || idx < 0 {
		c.details.SetText("")

		return
	}

	ev, err := c.store.At(idx)
	if err != nil {
		log.Warn().Err(err).Msg("no event for details")
		c.details.SetText("")

		return
	}

	c.details.SetText(fmt.Sprintf("[yellow]%s[white]\n%s", ev.Title, detailText(ev, c.now())))
}

// currentIndex returns the index of the event in the selected row, or -1.
func (c *Controller) currentIndex() int {
	row, _ := c.table.GetSelection()

	// adjust for the header row
	if idx := row - 1; idx >= 0 && idx < c.store.Len() {
		return idx
	}

	return -1
}

// selectIndex selects the row for the event at idx, clamped to the list.
func (c *Controller) selectIndex(idx int) {
	if idx >= c.store.Len() {
		idx = c.store.Len() - 1
	}

	if idx < 0 {
		idx = 0
	}

	c.table.Select(idx+1, 0)
}

func (c *Controller) showList() {
	c.pages.HidePage(pageSort)
	c.pages.HidePage(pageMessage)
	c.pages.SwitchToPage(pageList)

	c.updateHeader()
	c.selectIndex(c.currentIndex())
	c.updateDetails()

	c.app.SetInputCapture(c.handleKeys)
	c.app.SetFocus(c.table)
}

// showMessage shows a blocking dialog on top of the list until it is dismissed.
func (c *Controller) showMessage(text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			c.showList()
		})

	c.pages.AddPage(pageMessage, modal, false, true)
	c.app.SetInputCapture(nil)
	c.app.SetFocus(modal)
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	switch evt.Key() {
	case tcell.KeyRune:
		if k, ok := c.events[evt.Rune()]; ok {
			return k.Action(evt)
		}
	case tcell.KeyEscape:
		if c.content.selecting {
			c.cancelSelection()

			return nil
		}
	}

	return evt
}
