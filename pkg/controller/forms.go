package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/day-tracker/pkg/event"
	"github.com/matt-steen/day-tracker/pkg/store"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const invalidInputMessage = "Please enter a valid title and date"

func (c *Controller) switchToForm() {
	c.titleField.SetText("")
	c.dateField.SetText(c.now().Format(dateLayout))

	c.form.SetFocus(0)

	c.pages.SwitchToPage(pageForm)

	c.app.SetInputCapture(c.handleFormKeys)
	c.app.SetFocus(c.form)
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyEscape {
		c.showList()

		return nil
	}

	return evt
}

func (c *Controller) getFormGrid() *tview.Grid {
	header := tview.NewTable().SetBorders(false).SetSelectable(false, false)
	header.SetCell(0, 0, tview.NewTableCell("[yellow]New Event"))
	header.SetCell(1, 0, tview.NewTableCell(fmt.Sprintf("[orange]<Esc>[white] Cancel   date format: %s", dateLayout)))

	c.initForm()

	grid := tview.NewGrid().SetBorders(true).SetRows(2, 0)

	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.form, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) initForm() {
	titleMax := 50
	dateMax := len(dateLayout)

	c.form = tview.NewForm().
		AddInputField("Title", "", titleMax, nil, nil).
		AddInputField("Date", "", dateMax, nil, nil)

	c.titleField, _ = c.form.GetFormItemByLabel("Title").(*tview.InputField)
	c.dateField, _ = c.form.GetFormItemByLabel("Date").(*tview.InputField)

	c.form.AddButton("Add", c.saveForm)
	c.form.AddButton("Cancel", c.showList)
}

func (c *Controller) saveForm() {
	title := c.titleField.GetText()

	log.Debug().Msgf("saving event with title '%s' and date '%s'", title, c.dateField.GetText())

	date, err := parseDate(c.dateField.GetText())
	if err != nil {
		log.Debug().Err(err).Msg("rejected event date")
		c.showMessage(invalidInputMessage)

		return
	}

	ev, err := c.store.Create(c.ctx, title, date)

	switch {
	case errors.Is(err, event.ErrEmptyTitle):
		c.showMessage(invalidInputMessage)

		return
	case err != nil && !errors.Is(err, store.ErrNotSaved):
		log.Err(err).Msg("error creating the new event")
		c.showMessage(fmt.Sprintf("Could not add the event: %s", err))

		return
	}

	// the add re-sorted the list, so marks no longer point at the rows they were put on
	if c.content.selecting {
		c.cancelSelection()
	}

	c.showList()
	c.selectEvent(ev)

	if err != nil {
		log.Err(err).Msg("error saving the new event")
		c.showMessage(fmt.Sprintf("The event was added but could not be saved: %s", err))
	}
}

// selectEvent selects the first row holding ev, if any.
func (c *Controller) selectEvent(ev event.Event) {
	for i, e := range c.store.Events() {
		if e == ev {
			c.selectIndex(i)
			c.updateDetails()

			return
		}
	}
}

const sortButtonPrefix = "By "

func (c *Controller) getSortModal() *tview.Modal {
	buttons := []string{}
	for _, criterion := range []store.Criterion{store.ByDate, store.ByTitle, store.ByType} {
		buttons = append(buttons, sortButtonPrefix+criterion.String())
	}

	buttons = append(buttons, "Cancel")

	return tview.NewModal().
		SetText("Sort events").
		AddButtons(buttons).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			criterion, ok := sortButtonCriterion(buttonLabel)
			if !ok {
				c.showList()

				return
			}

			c.sortBy(criterion)
		})
}

// sortButtonCriterion returns the criterion named by a sort menu button. ok is false
// for Cancel, or when the menu was dismissed without a button.
func sortButtonCriterion(label string) (criterion store.Criterion, ok bool) {
	if !strings.HasPrefix(label, sortButtonPrefix) {
		return 0, false
	}

	criterion, err := store.ParseCriterion(strings.TrimPrefix(label, sortButtonPrefix))
	if err != nil {
		log.Warn().Err(err).Str("button", label).Msg("unknown sort button")

		return 0, false
	}

	return criterion, true
}

func (c *Controller) sortBy(criterion store.Criterion) {
	err := c.store.SortBy(c.ctx, criterion)

	if c.content.selecting {
		c.cancelSelection()
	}

	c.showList()
	c.selectIndex(0)

	if err != nil {
		log.Warn().Err(err).Stringer("criterion", criterion).Msg("error while sorting events")
		c.showMessage(fmt.Sprintf("Could not save the new order: %s", err))
	}
}
