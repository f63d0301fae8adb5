package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/content"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid/gesture"
)

const (
	// Vertical space reserved above and below the grid canvas.
	chromeTop    = 1
	chromeBottom = 2

	// One grid row spans this many terminal rows.
	cellRows = 2

	// Approximate width of a terminal character in screen pixels, used to
	// map the terminal width onto the breakpoint thresholds.
	charPixels = 8

	// Content tiles refresh on this interval.
	refreshInterval = time.Minute
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Wider   key.Binding
	Slimmer key.Binding
	Taller  key.Binding
	Shorter key.Binding
	Next    key.Binding
	Prev    key.Binding
	New     key.Binding
	Delete  key.Binding
	Clear   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Left:    key.NewBinding(key.WithKeys("left", "h")),
		Right:   key.NewBinding(key.WithKeys("right", "l")),
		Wider:   key.NewBinding(key.WithKeys("shift+right", "L")),
		Slimmer: key.NewBinding(key.WithKeys("shift+left", "H")),
		Taller:  key.NewBinding(key.WithKeys("shift+down", "J")),
		Shorter: key.NewBinding(key.WithKeys("shift+up", "K")),
		Next:    key.NewBinding(key.WithKeys("tab")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab")),
		New:     key.NewBinding(key.WithKeys("n")),
		Delete:  key.NewBinding(key.WithKeys("d", "x")),
		Clear:   key.NewBinding(key.WithKeys("C")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// contentMsg carries the rendered body for one tile back into the model.
type contentMsg struct {
	tileID string
	body   string
	err    error
}

type refreshMsg struct{}

// model is the interactive dashboard. All layout mutations go through the
// store; the model only holds presentation state and in-flight gestures.
type model struct {
	store    *grid.Store
	cfg      Config
	registry *content.Registry
	keys     keyMap

	guard  *gesture.Guard
	drag   *gesture.Drag
	resize *gesture.Resize

	width, height int
	columns       int
	selected      string
	bodies        map[string]string
	confirmClear  bool
	status        string
	statusErr     bool
}

func newModel(store *grid.Store, cfg Config, registry *content.Registry) model {
	guard := &gesture.Guard{}
	m := model{
		store:    store,
		cfg:      cfg,
		registry: registry,
		keys:     defaultKeyMap(),
		guard:    guard,
		drag:     gesture.NewDrag(store, guard),
		resize:   gesture.NewResize(store, guard),
		columns:  store.Columns(),
		bodies:   make(map[string]string),
	}
	if tiles := store.Snapshot().Tiles; len(tiles) > 0 {
		m.selected = tiles[0].ID
	}
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })}
	cmds = append(cmds, m.fetchAll()...)
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cols := m.cfg.Grid.ColumnsFor(msg.Width * charPixels)
		if cols != m.columns {
			m.columns = cols
			m.store.ApplyColumns(cols)
			m.status = fmt.Sprintf("%d columns", cols)
			m.statusErr = false
			return m, tea.Batch(m.fetchAll()...)
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)

	case contentMsg:
		if msg.err != nil {
			m.bodies[msg.tileID] = "unavailable"
		} else {
			m.bodies[msg.tileID] = msg.body
		}
		return m, nil

	case refreshMsg:
		cmds := append(m.fetchAll(),
			tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} }))
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	vp := m.viewport()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		id, handle, ok := m.hitTest(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.selected = id
		if handle != "" {
			if err := m.resize.Start(id, handle, float64(msg.X), float64(msg.Y)); err != nil {
				return m, nil
			}
		} else {
			if err := m.drag.Start(id); err != nil {
				return m, nil
			}
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.drag.Active() {
			m.drag.Move(float64(msg.X), float64(msg.Y), vp)
		} else if m.resize.Active() {
			m.resize.Move(float64(msg.X), float64(msg.Y), vp)
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.drag.Active() {
			m.drag.End(true)
			return m, nil
		}
		if m.resize.Active() {
			id := m.resize.TileID()
			if m.resize.End(true) {
				return m, m.fetchTile(id)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmClear {
		m.confirmClear = false
		if msg.String() == "y" {
			m.store.Clear()
			m.selected = ""
			m.bodies = make(map[string]string)
			m.status = "cleared"
			m.statusErr = false
		} else {
			m.status = "clear aborted"
			m.statusErr = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.guard.Busy() {
			m.drag.End(false)
			m.resize.End(false)
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.selected = m.cycleSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.selected = m.cycleSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.New):
		n := m.store.TileCount() + 1
		tile := m.store.CreateTile(grid.TileSpec{
			Title:   fmt.Sprintf("Tile %d", n),
			Content: content.Placeholder(fmt.Sprintf("Tile %d", n)),
		})
		m.selected = tile.ID
		m.status = "created " + tile.ID
		m.statusErr = false
		return m, m.fetchTile(tile.ID)

	case key.Matches(msg, m.keys.Delete):
		if m.selected == "" {
			return m, nil
		}
		id := m.selected
		if m.store.DeleteTile(id) {
			delete(m.bodies, id)
			m.selected = m.cycleSelection(0)
			m.status = "deleted " + id
			m.statusErr = false
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if m.store.TileCount() > 0 {
			m.confirmClear = true
		}
		return m, nil
	}

	t, ok := m.store.Tile(m.selected)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.nudge(t, 0, -1)
	case key.Matches(msg, m.keys.Down):
		m.nudge(t, 0, 1)
	case key.Matches(msg, m.keys.Left):
		m.nudge(t, -1, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(t, 1, 0)
	case key.Matches(msg, m.keys.Wider):
		return m.stretch(t, 1, 0)
	case key.Matches(msg, m.keys.Slimmer):
		return m.stretch(t, -1, 0)
	case key.Matches(msg, m.keys.Taller):
		return m.stretch(t, 0, 1)
	case key.Matches(msg, m.keys.Shorter):
		return m.stretch(t, 0, -1)
	}
	return m, nil
}

func (m *model) nudge(t grid.Tile, dx, dy int) {
	if !m.store.MoveTile(t.ID, t.X+dx, t.Y+dy) {
		m.status = "blocked"
		m.statusErr = true
	} else {
		m.status = ""
	}
}

func (m model) stretch(t grid.Tile, dw, dh int) (tea.Model, tea.Cmd) {
	if m.store.ResizeTile(t.ID, t.Width+dw, t.Height+dh) {
		m.status = ""
		return m, m.fetchTile(t.ID)
	}
	m.status = "blocked"
	m.statusErr = true
	return m, nil
}

// cycleSelection moves the selection by delta through the tiles in layout
// order, or re-anchors it when the selected tile no longer exists.
func (m model) cycleSelection(delta int) string {
	tiles := m.store.Snapshot().Tiles
	if len(tiles) == 0 {
		return ""
	}
	idx := 0
	for i, t := range tiles {
		if t.ID == m.selected {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(tiles) + len(tiles)) % len(tiles)
	return tiles[idx].ID
}

// Geometry.

func (m model) cellWidth() int {
	if m.columns <= 0 {
		return 4
	}
	w := m.width / m.columns
	if w < 4 {
		w = 4
	}
	return w
}

func (m model) viewport() gesture.Viewport {
	return gesture.Viewport{
		OriginX:    0,
		OriginY:    chromeTop,
		CellWidth:  float64(m.cellWidth()),
		CellHeight: cellRows,
	}
}

// hitTest maps a terminal coordinate onto a tile. The returned handle is
// empty for the tile body, or the resize handle for the right edge, bottom
// edge, or bottom-right corner.
func (m model) hitTest(mx, my int) (id string, handle gesture.Handle, ok bool) {
	cw := m.cellWidth()
	for _, t := range m.store.Snapshot().Tiles {
		tx := t.X * cw
		ty := chromeTop + t.Y*cellRows
		tw := t.Width * cw
		th := t.Height * cellRows
		if mx < tx || mx >= tx+tw || my < ty || my >= ty+th {
			continue
		}
		onRight := mx == tx+tw-1
		onBottom := my == ty+th-1
		switch {
		case onRight && onBottom:
			return t.ID, gesture.HandleSoutheast, true
		case onRight:
			return t.ID, gesture.HandleEast, true
		case onBottom:
			return t.ID, gesture.HandleSouth, true
		}
		return t.ID, "", true
	}
	return "", "", false
}

// Content fetching.

func (m model) fetchAll() []tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.store.Snapshot().Tiles {
		cmds = append(cmds, m.fetchTile(t.ID))
	}
	return cmds
}

func (m model) fetchTile(id string) tea.Cmd {
	t, ok := m.store.Tile(id)
	if !ok || t.Content == nil {
		return nil
	}
	c := t.Content
	w := t.Width*m.cellWidth() - 2
	h := t.Height*cellRows - 2
	reg := m.registry
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		body, err := reg.Render(ctx, c, w, h)
		return contentMsg{tileID: id, body: body, err: err}
	}
}

// View.

func (m model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	layout := m.store.Snapshot()
	cw := m.cellWidth()
	gridH := m.height - chromeTop - chromeBottom
	if gridH < cellRows {
		gridH = cellRows
	}
	c := newCanvas(m.width, gridH)

	for _, t := range layout.Tiles {
		if m.drag.Active() && t.ID == m.drag.TileID() {
			continue
		}
		b := borderNormal
		if t.ID == m.selected {
			b = borderSelected
		}
		tw, th := t.Width*cw, t.Height*cellRows
		if m.resize.Active() && t.ID == m.resize.TileID() {
			if w, h, ok := m.resize.Size(); ok {
				tw, th = w*cw, h*cellRows
				b = borderPreview
			}
		}
		m.drawTile(c, t, t.X*cw, t.Y*cellRows, tw, th, b)
	}

	if m.drag.Active() {
		if t, ok := m.store.Tile(m.drag.TileID()); ok {
			x, y, _ := m.drag.Position()
			b := borderPreview
			alloc := grid.NewAllocator(layout)
			if alloc.HasConflict(x, y, t.Width, t.Height, t.ID) {
				b = borderConflict
			}
			m.drawTile(c, &t, x*cw, y*cellRows, t.Width*cw, t.Height*cellRows, b)
		}
	}

	header := styleTitle.Render(layout.Name) + "  " +
		styleValue.Render(fmt.Sprintf("%d tiles / %d cols", len(layout.Tiles), m.columns))

	status := m.status
	style := styleStatus
	if m.statusErr {
		style = styleError
	}
	if m.confirmClear {
		status = "clear all tiles? (y/n)"
		style = styleWarning
	}

	help := styleHelp.Render("arrows move · shift+arrows resize · tab select · n new · d delete · C clear · q quit")

	return header + "\n" + c.String() + "\n" + style.Render(status) + "\n" + help
}

func (m model) drawTile(c *canvas, t *grid.Tile, x, y, w, h int, b borderSet) {
	c.box(x, y, w, h, b)
	if w > 4 {
		c.text(x+2, y, w-4, " "+t.Title+" ")
	}
	if b.fill != 0 {
		return
	}
	body := m.bodies[t.ID]
	line := 0
	start := 0
	for i := 0; i <= len(body); i++ {
		if i == len(body) || body[i] == '\n' {
			if line < h-2 {
				c.text(x+2, y+1+line, w-3, body[start:i])
			}
			line++
			start = i + 1
		}
	}
}
