package backend

import (
	"strings"
	"sync"

	"github.com/dshills/kedit/internal/renderer/paint"
)

// Memory is an in-memory backend for tests and headless use.
type Memory struct {
	mu            sync.Mutex
	width, height int
	cells         [][]Cell
	shown         int
	events        chan Event
}

// NewMemory creates a memory backend with the given dimensions.
func NewMemory(width, height int) *Memory {
	m := &Memory{events: make(chan Event, 100)}
	m.allocate(width, height)
	return m
}

func (m *Memory) allocate(width, height int) {
	m.width, m.height = max(width, 0), max(height, 0)
	m.cells = make([][]Cell, m.height)
	for y := range m.cells {
		m.cells[y] = make([]Cell, m.width)
		for x := range m.cells[y] {
			m.cells[y][x] = EmptyCell()
		}
	}
}

func (m *Memory) Init() error { return nil }
func (m *Memory) Shutdown()   {}

func (m *Memory) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for y := range m.cells {
		for x := range m.cells[y] {
			m.cells[y][x] = EmptyCell()
		}
	}
}

func (m *Memory) Execute(ops paint.Ops) {
	m.mu.Lock()
	defer m.mu.Unlock()
	newPainter(m.set).run(ops)
}

func (m *Memory) set(x, y int, cell Cell) {
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		m.cells[y][x] = cell
	}
}

func (m *Memory) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown++
}

func (m *Memory) PollEvent() Event {
	return <-m.events
}

func (m *Memory) PostEvent(ev Event) {
	select {
	case m.events <- ev:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Cell returns the cell at the given position, or an empty cell outside
// the screen.
func (m *Memory) Cell(x, y int) Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		return m.cells[y][x]
	}
	return EmptyCell()
}

// Row returns the text of row y with trailing blanks removed.
func (m *Memory) Row(y int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if y < 0 || y >= m.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range m.cells[y] {
		sb.WriteString(c.Text)
	}
	return strings.TrimRight(sb.String(), " ")
}

// ShowCount returns how many times Show was called.
func (m *Memory) ShowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shown
}

// Resize changes the screen size, clears it and posts a resize event.
func (m *Memory) Resize(width, height int) {
	m.mu.Lock()
	m.allocate(width, height)
	m.mu.Unlock()
	m.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
