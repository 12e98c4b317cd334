package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/things/pkg/glyph"
	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/task"
	"tableflip.dev/things/pkg/tracker"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
	modeHelp
)

const dateLayout = "2 Jan 2006"

// messages
type slotChangedMsg struct{ event store.Event }
type watchClosedMsg struct{}

// Model is the Bubble Tea model over a task store. Filter, selection and
// panel visibility live in the store; the model only keeps what the store
// does not know about: the cursor, input state and terminal size.
type Model struct {
	ctx    context.Context
	store  *tracker.Store
	events <-chan store.Event
	theme  Theme
	now    func() time.Time

	mode   mode
	cursor int

	input       textinput.Model
	addCategory task.Category
	editID      string

	// pendingDelete holds the id after the first d of a d d sequence.
	pendingDelete string

	help   *helpModel
	status string

	width  int
	height int
}

// New creates a model backed by s. events may be nil.
func New(ctx context.Context, s *tracker.Store, events <-chan store.Event, theme Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	return Model{
		ctx:         ctx,
		store:       s,
		events:      events,
		theme:       theme,
		now:         time.Now,
		mode:        modeNormal,
		input:       ti,
		addCategory: task.Personal,
		status:      "j/k move, enter open, o add, x complete, a archive, dd delete, f filter, ? help",
		width:       80,
		height:      24,
	}
}

// Init starts listening for slot changes.
func (m Model) Init() tea.Cmd {
	return m.waitForSlot()
}

func (m Model) waitForSlot() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return slotChangedMsg{event: ev}
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.help != nil {
			m.help.SetSize(m.width-4, m.height-4)
		}
		return m, nil
	case slotChangedMsg:
		if err := m.store.Reload(m.ctx); err != nil {
			m.status = "reload failed: " + err.Error()
		} else {
			m.status = "Reloaded, " + msg.event.Type.String()
		}
		m.clampCursor()
		return m, m.waitForSlot()
	case watchClosedMsg:
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeAdd || m.mode == modeEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if m.mode == modeHelp && m.help != nil {
		return m, m.help.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeHelp:
		switch key {
		case "?", "q", "esc":
			m.mode = modeNormal
			return m, nil
		}
		return m, m.help.Update(msg)
	case modeAdd, modeEdit:
		return m.handleInput(msg)
	}

	if key != "d" {
		m.pendingDelete = ""
	}

	state := m.store.State()
	switch {
	case state.SelectedID != "":
		return m.handleDetailKey(key, state)
	case state.ShowFilters:
		return m.handleFilterKey(key)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "enter":
		if t, ok := m.current(); ok {
			m.store.Select(t.ID)
		}
	case "space", "x":
		if t, ok := m.current(); ok {
			m.toggle(t)
		}
	case "a":
		if t, ok := m.current(); ok {
			m.archive(t)
		}
	case "d":
		if t, ok := m.current(); ok {
			m.deleteKey(t)
		}
	case "o":
		if !canAdd(state.Filter) {
			m.status = "Switch to All or Todo to add tasks"
			return m, nil
		}
		return m.startInput(modeAdd, "", "")
	case "e":
		if t, ok := m.current(); ok {
			return m.startInput(modeEdit, t.ID, t.Title)
		}
	case "f":
		m.store.ToggleFilterPanel()
	case "m":
		m.store.ToggleNavPanel()
	case "?":
		m.mode = modeHelp
		if m.help == nil {
			m.help = newHelp(m.width-4, m.height-4, m.theme.Dark)
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(key string, state tracker.State) (tea.Model, tea.Cmd) {
	t, ok := state.Selected()
	if !ok {
		m.store.ClearSelection()
		return m, nil
	}
	switch key {
	case "esc", "enter", "q":
		m.store.ClearSelection()
	case "space", "x":
		if t.Status != task.Archived {
			m.toggle(t)
		}
	case "a":
		if t.Status != task.Archived {
			m.archive(t)
		}
	case "e":
		m.store.ClearSelection()
		return m.startInput(modeEdit, t.ID, t.Title)
	case "d":
		m.deleteKey(t)
	}
	return m, nil
}

func (m Model) handleFilterKey(key string) (tea.Model, tea.Cmd) {
	filters := task.Filters()
	switch key {
	case "1", "2", "3", "4":
		f := filters[int(key[0]-'1')]
		m.store.SetFilter(f)
		m.store.ToggleFilterPanel()
		m.cursor = 0
		m.status = f.Title()
	case "f", "esc", "q":
		m.store.ToggleFilterPanel()
	}
	return m, nil
}

func (m Model) handleInput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		switch m.mode {
		case modeAdd:
			if t, ok := m.store.Add(value, m.addCategory); ok {
				m.status = "Added " + t.Title
			} else {
				m.status = "Nothing added, the title was empty"
			}
		case modeEdit:
			if _, ok := task.NormalizeTitle(value); !ok {
				m.status = "Title can not be empty"
				return m, nil
			}
			if m.store.Update(m.editID, tracker.Patch{Title: &value}) {
				m.status = "Edited"
			}
		}
		m.saveStatus()
		m.stopInput()
		return m, nil
	case "esc":
		if m.mode == modeAdd {
			m.status = "Add cancelled"
		} else {
			m.status = "Edit cancelled"
		}
		m.stopInput()
		return m, nil
	case "tab":
		if m.mode == modeAdd {
			if m.addCategory == task.Personal {
				m.addCategory = task.Business
			} else {
				m.addCategory = task.Personal
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startInput(md mode, id, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.editID = id
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmds := []tea.Cmd{textinput.Blink}
	if cmd := m.input.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) stopInput() {
	m.mode = modeNormal
	m.editID = ""
	m.input.Reset()
	m.input.Blur()
	m.clampCursor()
}

func (m *Model) toggle(t task.Task) {
	if t.Status == task.Archived {
		m.status = "Archived tasks can not be toggled"
		return
	}
	if m.store.Toggle(t.ID) {
		if t.Status == task.Completed {
			m.status = "Reopened " + t.Title
		} else {
			m.status = "Completed " + t.Title
		}
	}
	m.saveStatus()
	m.clampCursor()
}

func (m *Model) archive(t task.Task) {
	if m.store.Archive(t.ID) {
		m.status = "Archived " + t.Title
	}
	m.saveStatus()
	m.clampCursor()
}

func (m *Model) deleteKey(t task.Task) {
	if m.pendingDelete != t.ID {
		m.pendingDelete = t.ID
		m.status = fmt.Sprintf("Press d again to delete %q", t.Title)
		return
	}
	m.pendingDelete = ""
	if m.store.Delete(t.ID) {
		m.status = "Deleted " + t.Title
	}
	m.saveStatus()
	m.clampCursor()
}

func (m *Model) saveStatus() {
	if err := m.store.Err(); err != nil {
		m.status = "save failed: " + err.Error()
	}
}

// rows lists the visible tasks in display order: open tasks first, then
// completed ones. The archived filter is a single section.
func (m Model) rows() []task.Task {
	filtered := m.store.Filtered()
	if m.store.State().Filter == task.ArchivedOnly {
		return filtered
	}
	rows := tracker.FilterTasks(filtered, task.TodosOnly)
	return append(rows, tracker.FilterTasks(filtered, task.CompletedOnly)...)
}

func (m Model) current() (task.Task, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return task.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func canAdd(f task.Filter) bool {
	return f != task.CompletedOnly && f != task.ArchivedOnly
}

// View renders the header, the task list and whichever panel or overlay is
// open.
func (m Model) View() string {
	if m.mode == modeHelp && m.help != nil {
		return m.help.View() + "\n" + m.theme.Status.Render("?/esc close help")
	}

	state := m.store.State()
	var b strings.Builder
	b.WriteString(m.header(state))
	b.WriteString("\n\n")

	body := m.list(state)
	if state.ShowNav {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.navPanel(state), "  ", body)
	}
	if state.ShowFilters {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.filterPanel(state))
	}
	b.WriteString(body)

	if t, ok := state.Selected(); ok {
		b.WriteString("\n")
		b.WriteString(m.detail(t))
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Add (%s): %s\n", m.addCategory, m.input.View()))
		b.WriteString(m.theme.Faint.Render("enter save, tab switch category, esc cancel"))
	case modeEdit:
		b.WriteString("\n")
		b.WriteString("Edit: " + m.input.View() + "\n")
		b.WriteString(m.theme.Faint.Render("enter save, esc cancel"))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Status.Render(m.status))
	return b.String()
}

func (m Model) header(state tracker.State) string {
	title := m.theme.Title.Render("Your Things")
	date := m.theme.Date.Render(m.now().Format(dateLayout))

	stats := state.Stats()
	cats := make([]string, 0, len(task.Categories()))
	for _, c := range task.Categories() {
		g := glyph.Category(c)
		cats = append(cats, fmt.Sprintf("%s %s %d", m.theme.Category(c).Render(g.Symbol), g.Meaning, stats.Count(c)))
	}

	sum := state.Summary()
	bar := fmt.Sprintf("%s %d%% done", m.theme.Bar(sum.CompletionRate, 20), sum.CompletionRate)
	return title + "  " + date + "\n" + strings.Join(cats, "   ") + "\n" + bar
}

func (m Model) list(state tracker.State) string {
	var b strings.Builder
	b.WriteString(m.theme.Section.Render(state.Filter.Title()))
	b.WriteString("\n")

	rows := m.rows()
	if state.Filter == task.ArchivedOnly {
		m.section(&b, "", rows, 0)
		return strings.TrimRight(b.String(), "\n")
	}

	todos := tracker.FilterTasks(rows, task.TodosOnly)
	done := tracker.FilterTasks(rows, task.CompletedOnly)
	if state.Filter != task.CompletedOnly {
		m.section(&b, fmt.Sprintf("Todo (%d)", len(todos)), todos, 0)
	}
	if state.Filter != task.TodosOnly {
		m.section(&b, fmt.Sprintf("Completed (%d)", len(done)), done, len(todos))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) section(b *strings.Builder, title string, tasks []task.Task, offset int) {
	if title != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Faint.Render(title))
		b.WriteString("\n")
	}
	if len(tasks) == 0 {
		b.WriteString(m.theme.Faint.Render("  none"))
		b.WriteString("\n")
		return
	}
	width := max(m.width-8, 10)
	for i, t := range tasks {
		marker := "  "
		if offset+i == m.cursor {
			marker = m.theme.Cursor.Render("→") + " "
		}
		title := truncate.StringWithTail(t.Title, uint(width), "…")
		switch t.Status {
		case task.Completed:
			title = m.theme.Done.Render(title)
		case task.Archived:
			title = m.theme.Archived.Render(title)
		default:
			title = m.theme.Todo.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			marker,
			glyph.Status(t.Status).Symbol,
			m.theme.Category(t.Category).Render(glyph.Category(t.Category).Symbol),
			title,
		))
	}
}

func (m Model) filterPanel(state tracker.State) string {
	sum := state.Summary()
	lines := []string{m.theme.Section.Render("Filters")}
	for i, f := range task.Filters() {
		marker := "  "
		if f == state.Filter {
			marker = m.theme.Cursor.Render("•") + " "
		}
		lines = append(lines, fmt.Sprintf("%s%d %s (%d)", marker, i+1, f.Title(), sum.Count(f)))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Total Tasks: %d", sum.Total),
		fmt.Sprintf("Completed: %d", sum.Completed),
		fmt.Sprintf("Archived: %d", sum.Archived),
		fmt.Sprintf("Completion Rate: %d%%", sum.CompletionRate),
	)
	return m.theme.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) navPanel(state tracker.State) string {
	stats := state.Stats()
	lines := []string{m.theme.Section.Render("Categories")}
	for _, c := range task.Categories() {
		g := glyph.Category(c)
		lines = append(lines, fmt.Sprintf("%s %s %d", m.theme.Category(c).Render(g.Symbol), g.Meaning, stats.Count(c)))
	}
	lines = append(lines, "", m.theme.Section.Render("Key"))
	for _, g := range glyph.StatusGlyphs() {
		lines = append(lines, fmt.Sprintf("%s %s", g.Symbol, g.Meaning))
	}
	return m.theme.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) detail(t task.Task) string {
	lines := []string{
		m.theme.Title.Render(t.Title),
		"",
		fmt.Sprintf("Category   %s %s", m.theme.Category(t.Category).Render(glyph.Category(t.Category).Symbol), t.Category),
		fmt.Sprintf("Status     %s %s", glyph.Status(t.Status).Symbol, t.Status),
		fmt.Sprintf("Created    %s", t.CreatedAt.Display()),
	}
	if t.CompletedAt != nil {
		lines = append(lines, fmt.Sprintf("Completed  %s", t.CompletedAt.Display()))
	}
	if t.ArchivedAt != nil {
		lines = append(lines, fmt.Sprintf("Archived   %s", t.ArchivedAt.Display()))
	}

	hints := []string{"e edit", "dd delete", "esc close"}
	if t.Status != task.Archived {
		toggle := "x complete"
		if t.Status == task.Completed {
			toggle = "x reopen"
		}
		hints = append([]string{toggle, "a archive"}, hints...)
	}
	lines = append(lines, "", m.theme.Faint.Render(strings.Join(hints, "  ")))
	return m.theme.Overlay.Render(strings.Join(lines, "\n"))
}
