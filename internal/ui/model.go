package ui

import (
	"fmt"
	"time"

	"github.com/cwarden/verdandi/internal/config"
	"github.com/cwarden/verdandi/internal/gesture"
	"github.com/cwarden/verdandi/internal/grid"
	"github.com/cwarden/verdandi/internal/schedule"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/google/uuid"
)

type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewHelp
	ViewEventEditor
)

type Model struct {
	// Core components
	config  *config.Config
	coord   *gesture.Coordinator
	watcher *schedule.Watcher

	// Schedule state. The collections are replaced wholesale and handed
	// to the coordinator; nothing mutates them in place.
	resources []schedule.Resource
	events    []schedule.Event
	gran      schedule.Granularity

	// View state
	mode          ViewMode
	width         int
	height        int
	selectedRow   int
	selectedCol   int
	hoveredRow    int
	frameRunning  bool
	mousePressed  bool

	// UI state
	message      string
	messageTimer *time.Timer

	// Editor state for the new-event dialog
	pendingResource string
	pendingStart    time.Time
	pendingEnd      time.Time
	inputBuffer     string
	cursorPos       int

	reloads chan string
	styles  Styles
}

type Styles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Header   lipgloss.Style
	Gutter   lipgloss.Style
	Event    lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(252)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(235)).
			Background(lipgloss.ANSIColor(220)).
			Bold(true),
		Today: lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(220)).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(220)).
			Bold(true).
			Underline(true),
		Gutter: lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(39)),
		Event: lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(40)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(241)),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(220)).
			Background(lipgloss.ANSIColor(235)).
			Padding(0, 1),
	}
}

func NewModel(cfg *config.Config, sched *schedule.Schedule) *Model {
	gran, _ := schedule.ParseGranularity(cfg.Granularity)

	m := &Model{
		config:     cfg,
		gran:       gran,
		hoveredRow: -1,
		reloads:    make(chan string, 8),
		styles:     DefaultStyles(),
	}
	if sched != nil {
		m.resources = sched.Resources
		m.events = sched.Events
	}

	opts := gesture.Options{
		Editable:  cfg.Editable,
		Creatable: cfg.Creatable,
		Droppable: cfg.Droppable,
		Metrics: grid.Metrics{
			ColumnWidth:  cfg.ColumnWidth,
			RowHeight:    cfg.RowHeight,
			HeaderHeight: 1,
			GutterWidth:  cfg.GutterWidth,
		},
		Scroll: gesture.ScrollConfig{
			EdgeThreshold: cfg.EdgeThreshold,
			MaxHorizontal: cfg.MaxScrollHorizontal,
			MaxVertical:   cfg.MaxScrollVertical,
		},
		DropCooldown: cfg.DropCooldown,
	}
	m.coord = gesture.NewCoordinator(opts, gesture.Callbacks{
		OnEventCreate: m.collectEventDetails,
		OnEventDrop:   m.applyEventDrop,
	})
	m.coord.OnErrorMessage(func(text string) { m.showMessage(text) })
	m.coord.OnHoveredResource(func(row int) { m.hoveredRow = row })

	m.coord.SetColumns(m.generateColumns(), gran)
	m.coord.SetData(m.resources, m.events)

	// Reload schedule files when they change on disk
	watcher, err := schedule.NewWatcher(func(path string) {
		select {
		case m.reloads <- path:
		default:
		}
	})
	if err == nil {
		m.watcher = watcher
		for _, file := range cfg.ScheduleFiles {
			watcher.AddFile(file)
		}
	}

	return m
}

// generateColumns builds the visible bucket sequence around today.
func (m *Model) generateColumns() []time.Time {
	now := time.Now()
	from := now.AddDate(0, 0, -m.config.HorizonDays/6)
	to := now.AddDate(0, 0, m.config.HorizonDays)
	return schedule.Columns(from, to, m.gran)
}

// collectEventDetails is the coordinator's create collaborator: the
// committed interval opens the title editor, and the event is added
// when the editor accepts.
func (m *Model) collectEventDetails(resourceID string, start, end time.Time) error {
	m.pendingResource = resourceID
	m.pendingStart = start
	m.pendingEnd = end
	m.inputBuffer = ""
	m.cursorPos = 0
	m.mode = ViewEventEditor
	return nil
}

// applyEventDrop is the coordinator's relocation collaborator.
func (m *Model) applyEventDrop(ev schedule.Event, resourceID string, start, end time.Time) error {
	next := make([]schedule.Event, len(m.events))
	copy(next, m.events)
	for i := range next {
		if next[i].ID == ev.ID {
			next[i].ResourceID = resourceID
			next[i].Start = start
			next[i].End = end
			m.events = next
			m.coord.SetData(m.resources, m.events)
			return nil
		}
	}
	return fmt.Errorf("event %s no longer exists", ev.ID)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.tickCmd(),
		m.waitForReload(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve two status bar lines at the bottom
		m.coord.SetViewport(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		if m.coord.NeedsTick() {
			m.coord.Tick()
			return m, m.frameCmd()
		}
		m.frameRunning = false
		return m, nil

	case tickMsg:
		if m.config.AutoRefresh {
			m.reloadSchedule()
			return m, m.tickCmd()
		}
		return m, nil

	case scheduleChangedMsg:
		m.reloadSchedule()
		return m, m.waitForReload()

	case messageTimeoutMsg:
		m.message = ""
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ViewEventEditor {
		return m.handleEditorKeys(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.coord.Close()
		if m.watcher != nil {
			m.watcher.Close()
		}
		return m, tea.Quit

	case "?":
		if m.mode == ViewHelp {
			m.mode = ViewGrid
		} else {
			m.mode = ViewHelp
		}

	case "esc":
		m.coord.Cancel()
		m.mode = ViewGrid

	case "r":
		m.reloadSchedule()
		m.showMessage("Reloaded schedule")

	case "l", "right":
		m.moveSelection(0, 1)

	case "h", "left":
		m.moveSelection(0, -1)

	case "j", "down":
		m.moveSelection(1, 0)

	case "k", "up":
		m.moveSelection(-1, 0)

	case "o":
		// Jump to today's column
		cols := m.coord.Columns()
		today := schedule.TruncateBucket(time.Now(), m.gran)
		for i, c := range cols {
			if schedule.BucketKey(c) == schedule.BucketKey(today) {
				m.selectedCol = i
				break
			}
		}
		m.scrollSelectionIntoView()

	case "z":
		// Cycle granularity day -> month -> quarter
		switch m.gran {
		case schedule.Day:
			m.gran = schedule.Month
		case schedule.Month:
			m.gran = schedule.Quarter
		default:
			m.gran = schedule.Day
		}
		m.coord.SetColumns(m.generateColumns(), m.gran)
		m.coord.SetData(m.resources, m.events)
		m.selectedCol = 0
		m.showMessage(fmt.Sprintf("Granularity: %s", m.gran))

	case "n":
		// New event on the selected cell; the editor collects the title
		cols := m.coord.Columns()
		if res, ok := m.coord.Index().Resource(m.selectedRow); ok && m.selectedCol < len(cols) {
			start := cols[m.selectedCol]
			end := schedule.NextBucket(start, m.gran)
			if m.coord.Index().HasConflict(res.ID, start, end, "") {
				m.showMessage("Cell is already taken")
			} else {
				m.collectEventDetails(res.ID, start, end)
			}
		}
	}

	return m, nil
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ViewGrid
		return m, nil

	case tea.KeyEnter:
		if m.inputBuffer != "" {
			ev := schedule.Event{
				ID:         uuid.NewString(),
				ResourceID: m.pendingResource,
				Start:      m.pendingStart,
				End:        m.pendingEnd,
				Title:      m.inputBuffer,
			}
			next := make([]schedule.Event, len(m.events), len(m.events)+1)
			copy(next, m.events)
			m.events = append(next, ev)
			m.coord.SetData(m.resources, m.events)
			m.showMessage("Event added")
		}
		m.mode = ViewGrid
		return m, nil

	case tea.KeyBackspace:
		if m.cursorPos > 0 {
			m.inputBuffer = m.inputBuffer[:m.cursorPos-1] + m.inputBuffer[m.cursorPos:]
			m.cursorPos--
		}

	case tea.KeyLeft:
		if m.cursorPos > 0 {
			m.cursorPos--
		}

	case tea.KeyRight:
		if m.cursorPos < len(m.inputBuffer) {
			m.cursorPos++
		}

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.inputBuffer = m.inputBuffer[:m.cursorPos] + string(r) + m.inputBuffer[m.cursorPos:]
			m.cursorPos++
		}
	}

	return m, nil
}

func (m *Model) moveSelection(dRow, dCol int) {
	m.selectedRow += dRow
	m.selectedCol += dCol
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
	if max := len(m.resources) - 1; m.selectedRow > max && max >= 0 {
		m.selectedRow = max
	}
	if m.selectedCol < 0 {
		m.selectedCol = 0
	}
	if max := len(m.coord.Columns()) - 1; m.selectedCol > max && max >= 0 {
		m.selectedCol = max
	}
	m.scrollSelectionIntoView()
}

func (m *Model) scrollSelectionIntoView() {
	w := m.coord.Window()
	rowTop := m.selectedRow * w.RowHeight()
	if rowTop < w.Offset() {
		w.ScrollTo(rowTop)
	} else if bottom := rowTop + w.RowHeight(); bottom > w.Offset()+m.bodyHeight() {
		w.ScrollTo(bottom - m.bodyHeight())
	}

	colW := m.config.ColumnWidth
	colLeft := m.selectedCol * colW
	bodyWidth := m.width - m.config.GutterWidth
	if colLeft < m.coord.XOffset() {
		m.coord.ScrollColumns(colLeft - m.coord.XOffset())
	} else if right := colLeft + colW; right > m.coord.XOffset()+bodyWidth {
		m.coord.ScrollColumns(right - m.coord.XOffset() - bodyWidth)
	}
}

func (m *Model) bodyHeight() int {
	h := m.height - 2 - 1 // status bar lines and header
	if h < 0 {
		return 0
	}
	return h
}

func (m *Model) reloadSchedule() {
	if len(m.config.ScheduleFiles) == 0 {
		return
	}
	now := time.Now()
	horizonStart := now.AddDate(0, 0, -m.config.HorizonDays)
	horizonEnd := now.AddDate(0, 0, 2*m.config.HorizonDays)

	var resources []schedule.Resource
	var events []schedule.Event
	for _, file := range m.config.ScheduleFiles {
		sched, err := schedule.LoadFile(file, horizonStart, horizonEnd)
		if err != nil {
			m.showMessage(fmt.Sprintf("Error loading schedule: %v", err))
			return
		}
		resources = append(resources, sched.Resources...)
		events = append(events, sched.Events...)
	}

	m.resources = resources
	m.events = events
	m.coord.SetData(m.resources, m.events)
}

func (m *Model) showMessage(msg string) {
	m.message = msg
	if m.messageTimer != nil {
		m.messageTimer.Stop()
	}
	m.messageTimer = time.AfterFunc(3*time.Second, func() {
		m.message = ""
	})
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.config.RefreshRate, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *Model) frameCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m *Model) waitForReload() tea.Cmd {
	return func() tea.Msg {
		path, ok := <-m.reloads
		if !ok {
			return nil
		}
		return scheduleChangedMsg{path: path}
	}
}

// Message types
type tickMsg struct{}
type frameMsg struct{}
type messageTimeoutMsg struct{}
type scheduleChangedMsg struct{ path string }
