package terminal

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-gfs/gfs/backend"
	"github.com/valerio/go-gfs/gfs/backend/terminal/render"
	"github.com/valerio/go-gfs/gfs/bmr"
	"github.com/valerio/go-gfs/gfs/input"
	"github.com/valerio/go-gfs/gfs/input/action"
	"github.com/valerio/go-gfs/gfs/input/event"
	"github.com/valerio/go-gfs/gfs/video"
)

const (
	logPanelWidth = 48
	logCapacity   = 200
	minTermWidth  = 60
	minTermHeight = 12

	// Key expiry timeout - slightly longer than typical key repeat interval
	keyTimeout = 100 * time.Millisecond

	helpText = " Arrows=move  S/F12=snapshot  M=audio  +/-=log level  Q/Esc=quit "
)

// Backend implements the Backend interface using tcell. Frames are drawn
// with half-block glyphs in true colour, two pixels per cell, next to a log
// panel.
type Backend struct {
	screen     tcell.Screen
	config     backend.BackendConfig
	logBuffer  *render.LogBuffer
	level      *slog.LevelVar
	prevLogger *slog.Logger
	signals    chan os.Signal
	size       image.Point
	now        func() time.Time

	eventQueue []backend.InputEvent        // Collect events to return
	keyStates  map[action.Action]time.Time // Last time each key was pressed
	activeKeys map[action.Action]bool      // Keys active in previous frame
}

// New creates a new terminal backend on the controlling terminal
func New() *Backend {
	return &Backend{now: time.Now}
}

// NewWithScreen creates a terminal backend drawing to screen, which must not
// be initialized yet.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen, now: time.Now}
}

// Init initializes the terminal and routes the default logger to the log
// panel
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	t.level = config.LogLevel
	if t.level == nil {
		t.level = new(slog.LevelVar)
	}
	t.logBuffer = render.NewLogBuffer(logCapacity)
	t.prevLogger = slog.Default()
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, t.level)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()
	w, h := t.screen.Size()
	t.size = image.Pt(w, h)

	// The terminal is in raw mode, so Ctrl-C arrives as a key; signals
	// still come from kill or a closed terminal.
	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	slog.Info("Terminal backend initialized", "columns", w, "rows", h)
	return nil
}

func (t *Backend) Surface() bmr.Surface {
	return t
}

// ClientArea returns the game area in pixels: every cell holds two pixels
// stacked vertically. A terminal below the minimum size has no area.
func (t *Backend) ClientArea() (image.Rectangle, error) {
	if t.screen == nil {
		return image.Rectangle{}, bmr.ErrSurfaceUnavailable
	}
	w, h := t.screen.Size()
	if w < minTermWidth || h < minTermHeight {
		return image.Rectangle{}, nil
	}
	return image.Rect(0, 0, gameAreaWidth(w), (h-2)*2), nil
}

// Blit writes img to the game area cells. The screen is flushed by Update.
func (t *Backend) Blit(dst image.Rectangle, img *image.RGBA) error {
	if t.screen == nil {
		return bmr.ErrSurfaceUnavailable
	}
	for cy := 0; cy < dst.Dy()/2; cy++ {
		for x := 0; x < dst.Dx(); x++ {
			top := img.RGBAAt(x, 2*cy)
			bottom := img.RGBAAt(x, 2*cy+1)
			glyph, fg, bg := render.HalfBlock(top, bottom)

			style := tcell.StyleDefault.Foreground(rgb(fg)).Background(rgb(bg))
			// row 0 is the title bar
			t.screen.SetContent(dst.Min.X+x, dst.Min.Y/2+cy+1, glyph, nil, style)
		}
	}
	return nil
}

// Update processes terminal events, draws the panels and flushes the screen
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	now := t.now()

	// Poll for input events synchronously
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
			w, h := ev.Size()
			if size := image.Pt(w, h); size != t.size {
				t.size = size
				slog.Debug("Terminal resized", "columns", w, "rows", h)
				t.eventQueue = append(t.eventQueue, backend.Exposed())
			}
		}
	}

	select {
	case sig := <-t.signals:
		slog.Info("Received signal, quitting", "signal", sig)
		t.eventQueue = append(t.eventQueue, backend.Quit())
	default:
	}

	events = append(events, t.movementEvents(now)...)
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	t.drawChrome(frame)
	t.screen.Show()

	return events, nil
}

// movementEvents turns the last key press times into Press, Hold and
// Release events. Terminals report no key release, so a key counts as held
// until keyTimeout passes without a repeat.
func (t *Backend) movementEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}
		currentlyActive[act] = true
		if !t.activeKeys[act] {
			slog.Debug("Key press", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		} else {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive
	return events
}

// Cleanup restores the terminal and the previous default logger
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		t.screen.Fini()
		t.screen = nil
	}
	if t.prevLogger != nil {
		slog.SetDefault(t.prevLogger)
		t.prevLogger = nil
	}
	slog.Info("Terminal backend closed")
	return nil
}

// Logs returns the captured log records
func (t *Backend) Logs() *render.LogBuffer {
	return t.logBuffer
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = runeMapping[ev.Rune()]
	}
	if !ok {
		return
	}

	if act.IsMovement() {
		// Clear all directions to simulate exclusive directions; a terminal
		// only repeats the last key held anyway
		for _, dir := range []action.Action{action.PlayerUp, action.PlayerDown, action.PlayerLeft, action.PlayerRight} {
			delete(t.keyStates, dir)
		}
		t.keyStates[act] = now
		return
	}
	t.eventQueue = append(t.eventQueue, backend.Press(act))
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyUp:     "Up",
	tcell.KeyDown:   "Down",
	tcell.KeyLeft:   "Left",
	tcell.KeyRight:  "Right",
	tcell.KeyEscape: "Escape",
	tcell.KeyF12:    "F12",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)
	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}
	mapping[tcell.KeyCtrlC] = action.HostQuit
	return mapping
}

// buildRuneMapping maps every single-character default key name
func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)
	for keyName, act := range input.DefaultKeyMap {
		if r := []rune(keyName); len(r) == 1 {
			mapping[r[0]] = act
		}
	}
	return mapping
}

var (
	keyMapping  = buildKeyMapping()
	runeMapping = buildRuneMapping()
)

func (t *Backend) drawChrome(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		t.screen.Clear()
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		drawText(t.screen, 0, termHeight/2, termWidth, msg, style)
		return
	}

	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	dividerX := gameAreaWidth(termWidth)
	for y := 0; y < termHeight-1; y++ {
		t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}

	clearRow(t.screen, 0, 0, dividerX)
	title := fmt.Sprintf(" %s ", t.config.Title)
	if frame != nil {
		title = fmt.Sprintf(" %s %dx%d %s ", t.config.Title, frame.Width(), frame.Height(), frame.Info().RowOrder())
	}
	drawText(t.screen, 1, 0, dividerX-1, title, titleStyle)

	panelX := dividerX + 1
	clearRow(t.screen, panelX, 0, logPanelWidth)
	logsTitle := fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.level.Level())
	drawText(t.screen, panelX+1, 0, logPanelWidth-1, logsTitle, titleStyle)
	t.drawLogs(panelX, 1, logPanelWidth, termHeight)

	clearRow(t.screen, 0, termHeight-1, termWidth)
	drawText(t.screen, 0, termHeight-1, termWidth, helpText, borderStyle)
}

func (t *Backend) drawLogs(startX, startY, width, termHeight int) {
	availableHeight := termHeight - startY - 1
	if width <= 0 || availableHeight <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	logs := t.logBuffer.GetRecent(availableHeight, t.level.Level())
	for i := 0; i < availableHeight; i++ {
		y := startY + i
		clearRow(t.screen, startX, y, width)
		if i >= len(logs) {
			continue
		}

		entry := logs[i]
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}
		drawText(t.screen, startX, y, width, render.FormatLogEntry(entry), style)
	}
}

func gameAreaWidth(termWidth int) int {
	return termWidth - logPanelWidth - 1
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for i, ch := range []rune(render.Truncate(text, width)) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}

func clearRow(screen tcell.Screen, x, y, width int) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, tcell.StyleDefault)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
