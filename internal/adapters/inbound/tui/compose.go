// Package tui runs the interactive order composer on a terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	render "github.com/dibella/orderdesk/internal/adapters/outbound/tui"
	"github.com/dibella/orderdesk/internal/application"
	"github.com/dibella/orderdesk/internal/domain"
)

type mountedMsg struct{ err error }

type submittedMsg struct {
	id  domain.OrderID
	err error
}

// Model is the bubbletea model of one composition session. Every edit goes
// through the Composer; the model only tracks the cursor and the field being
// typed.
type Model struct {
	ctx      context.Context
	composer *application.Composer
	title    string

	cursor  int
	field   domain.Field
	input   string
	editing bool
	busy    bool
	status  string
	err     error

	saved    *domain.OrderID
	quitting bool
}

// NewModel wraps c. ctx bounds the gateway calls the model starts.
func NewModel(ctx context.Context, c *application.Composer) Model {
	title := "New order"
	snap := c.Snapshot()
	if snap.Mode == application.ModeEdit {
		title = fmt.Sprintf("Order #%d", snap.Order.ID)
	}
	return Model{ctx: ctx, composer: c, title: title, busy: true}
}

// Saved returns the id of the submitted order, or nil when the session ended
// without saving.
func (m Model) Saved() *domain.OrderID { return m.saved }

func (m Model) Init() tea.Cmd {
	return mountCmd(m.ctx, m.composer)
}

func mountCmd(ctx context.Context, c *application.Composer) tea.Cmd {
	return func() tea.Msg {
		return mountedMsg{err: c.Mount(ctx)}
	}
}

func submitCmd(ctx context.Context, c *application.Composer) tea.Cmd {
	return func() tea.Msg {
		id, err := c.Submit(ctx)
		return submittedMsg{id: id, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.status = "Ready"
		}
		return m, nil

	case submittedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		id := msg.id
		m.saved = &id
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.composer.Snapshot().Order.LineItems

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "a":
		if m.busy {
			return m, nil
		}
		if m.apply(m.composer.AddLineItem()) {
			m.cursor = len(items)
			m.startEditing(domain.FieldProductID, domain.LineItem{})
		}
	case "x":
		if m.busy || len(items) == 0 {
			return m, nil
		}
		if m.apply(m.composer.RemoveLineItem(m.cursor)) {
			m.cursor = min(m.cursor, max(len(items)-2, 0))
			m.status = "Line item removed"
		}
	case "p", "n":
		if m.busy || len(items) == 0 {
			return m, nil
		}
		field := domain.FieldProductID
		if msg.String() == "n" {
			field = domain.FieldQuantity
		}
		if !m.composer.Snapshot().State.Editable() {
			m.err = domain.ErrNotEditable
			return m, nil
		}
		m.startEditing(field, items[m.cursor])
	case "s":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.err = nil
		m.status = ""
		return m, submitCmd(m.ctx, m.composer)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.editing = false
		m.input = ""
	case tea.KeyEnter:
		m.editing = false
		if m.apply(m.composer.UpdateLineItem(m.cursor, m.field, m.input)) {
			m.status = fmt.Sprintf("%s updated", m.field)
		}
		m.input = ""
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m *Model) startEditing(field domain.Field, current domain.LineItem) {
	m.editing = true
	m.field = field
	m.input = ""
	switch {
	case field == domain.FieldProductID && current.ProductID != 0:
		m.input = current.ProductID.String()
	case field == domain.FieldQuantity && current.Quantity != 0:
		m.input = strconv.Itoa(current.Quantity)
	}
}

// apply records the outcome of a composer edit and reports whether it went
// through.
func (m *Model) apply(err error) bool {
	if err != nil {
		m.err = err
		return false
	}
	m.err = nil
	return true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.composer.Snapshot()
	err := m.err
	if err == nil && snap.Err != nil && !errors.Is(snap.Err, domain.ErrClosed) {
		err = snap.Err
	}
	return render.RenderComposer(render.ComposerView{
		Title:       m.title,
		State:       snap.State.String(),
		Order:       snap.Order,
		Progress:    snap.Progress,
		Products:    snap.Products,
		Cursor:      m.cursor,
		Field:       m.field,
		Input:       m.input,
		Editing:     m.editing,
		Busy:        m.busy,
		Status:      m.status,
		Err:         err,
		ProductsErr: snap.ProductsErr,
	})
}

// Run opens a composer for id (zero for a new order) and drives it from in
// until the order is saved or the user quits. It returns the saved id, or
// nil when nothing was saved.
func Run(ctx context.Context, svc *application.OrderService, id domain.OrderID, in io.Reader, out io.Writer) (*domain.OrderID, error) {
	c := svc.NewComposer(id)
	defer c.Close()

	p := tea.NewProgram(NewModel(ctx, c),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running composer: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	return m.Saved(), nil
}
