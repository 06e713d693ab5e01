package controller

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

func keyName(key rune) string {
	if key == ' ' {
		return "Space"
	}

	return string(key)
}

func (c *Controller) initEvents() {
	c.events = map[rune]KeyEvent{
		'a': {Description: "Add", Action: c.getAddAction()},
		'x': {Description: "Delete", Action: c.getDeleteAction()},
		'm': {Description: "Multi-select", Action: c.getSelectModeAction()},
		' ': {Description: "Toggle selection", Action: c.getToggleAction()},
		'A': {Description: "Select all", Action: c.getSelectAllAction()},
		'J': {Description: "Move down", Action: c.getMoveAction(1)},
		'K': {Description: "Move up", Action: c.getMoveAction(-1)},
		's': {Description: "Sort", Action: c.getSortAction()},
		'q': {Description: "Exit", Action: c.getExitAction()},
	}
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		log.Info().Msg("terminating application")

		c.app.Stop()

		return nil
	}
}

func (c *Controller) getAddAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.switchToForm()

		return nil
	}
}

func (c *Controller) getSortAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.pages.ShowPage(pageSort)
		c.app.SetInputCapture(nil)
		c.app.SetFocus(c.sorting)

		return nil
	}
}

func (c *Controller) getSelectModeAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.content.selecting {
			c.cancelSelection()
		} else {
			c.content.selecting = true
			c.updateHeader()
		}

		return nil
	}
}

func (c *Controller) getToggleAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		idx := c.currentIndex()
		if idx < 0 {
			return nil
		}

		c.content.selecting = true

		if c.content.selected[idx] {
			delete(c.content.selected, idx)
		} else {
			c.content.selected[idx] = true
		}

		c.updateHeader()

		return nil
	}
}

// getSelectAllAction selects every event, or clears the selection if everything is
// already selected.
func (c *Controller) getSelectAllAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.content.selecting = true

		if len(c.content.selected) == c.store.Len() {
			c.content.selected = map[int]bool{}
		} else {
			for i := 0; i < c.store.Len(); i++ {
				c.content.selected[i] = true
			}
		}

		c.updateHeader()

		return nil
	}
}

func (c *Controller) cancelSelection() {
	c.content.selecting = false
	c.content.selected = map[int]bool{}
	c.updateHeader()
}

// getDeleteAction removes the selected events in multi-select mode, or the current
// event otherwise.
func (c *Controller) getDeleteAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		indices := []int{}

		if c.content.selecting {
			for idx := range c.content.selected {
				indices = append(indices, idx)
			}

			sort.Ints(indices)
		} else if idx := c.currentIndex(); idx >= 0 {
			indices = append(indices, idx)
		}

		if len(indices) == 0 {
			return nil
		}

		first := indices[0]

		err := c.store.Remove(c.ctx, indices...)

		c.cancelSelection()
		c.selectIndex(first)
		c.updateDetails()

		if err != nil {
			log.Warn().Err(err).Ints("indices", indices).Msg("error while removing events")
			c.showMessage(fmt.Sprintf("Could not delete: %s", err))
		}

		return nil
	}
}

// getMoveAction moves the current event by offset rows, keeping it selected.
func (c *Controller) getMoveAction(offset int) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		from := c.currentIndex()
		to := from + offset

		if from < 0 || to < 0 || to >= c.store.Len() {
			return nil
		}

		err := c.store.Move(c.ctx, from, to)

		// selection marks refer to positions, which just changed
		if c.content.selecting {
			c.cancelSelection()
		}

		c.selectIndex(to)

		if err != nil {
			log.Warn().Err(err).Int("from", from).Int("to", to).Msg("error while moving event")
			c.showMessage(fmt.Sprintf("Could not save the new order: %s", err))
		}

		return nil
	}
}
