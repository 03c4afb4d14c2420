package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskflow/internal/filter"
	"github.com/sandeepkv93/taskflow/internal/scheduler"
)

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DueMsg{Event: ev}
	}
}

// syncWatcher reschedules due events for the current document.
func (m *Model) syncWatcher() {
	if m.Scheduler == nil {
		return
	}
	cards := m.session.Board().Cards.All()
	if err := m.Scheduler.Sync(cards, m.session.Today(), m.loc); err != nil {
		m.logger.Warn("due watcher sync failed", "err", err)
	}
}

const dueRetryDelay = time.Minute

// onDue announces a card that just became overdue. Stale events for
// deleted or re-dated cards are ignored; an event that fires before the
// session clock has reached the next day is retried.
func (m *Model) onDue(ev scheduler.DueEvent) {
	card, ok := m.session.Card(ev.CardID)
	if !ok || card.Due != ev.Due {
		return
	}
	if !filter.IsOverdue(card.Due, m.session.Today()) {
		m.retryDue(ev)
		return
	}
	body := fmt.Sprintf("%s is overdue (due %s)", card.Title, card.Due)
	m.Status = StatusBar{Text: body}
	m.notify("Overdue", body, "warn")
}

func (m *Model) retryDue(ev scheduler.DueEvent) {
	if m.Scheduler == nil {
		return
	}
	ev.TriggerAt = time.Now().Add(dueRetryDelay)
	if err := m.Scheduler.Schedule(ev); err != nil {
		m.logger.Warn("due retry failed", "card", ev.CardID, "err", err)
	}
}
