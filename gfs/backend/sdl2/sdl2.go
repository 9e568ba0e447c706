//go:build sdl2

package sdl2

import (
	"fmt"
	"image"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/go-gfs/gfs/backend"
	"github.com/valerio/go-gfs/gfs/bmr"
	"github.com/valerio/go-gfs/gfs/input"
	"github.com/valerio/go-gfs/gfs/input/action"
	"github.com/valerio/go-gfs/gfs/video"
)

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stub, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	texSize  image.Point
	config   backend.BackendConfig

	controllers map[sdl.JoystickID]*sdl.GameController
	events      []backend.InputEvent
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
	}
}

// Init opens a resizable window with an accelerated renderer
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_GAMECONTROLLER); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(config.Width),
		int32(config.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	slog.Info("SDL2 backend initialized",
		"width", config.Width,
		"height", config.Height,
		"controllers", sdl.NumJoysticks())
	return nil
}

func (s *Backend) Surface() bmr.Surface {
	if s.renderer == nil {
		return nil
	}
	return s
}

// ClientArea returns the renderer output size in pixels
func (s *Backend) ClientArea() (image.Rectangle, error) {
	if s.renderer == nil {
		return image.Rectangle{}, bmr.ErrSurfaceUnavailable
	}
	w, h, err := s.renderer.GetOutputSize()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("failed to query output size: %w", err)
	}
	return image.Rect(0, 0, int(w), int(h)), nil
}

// Blit uploads img to a streaming texture and presents it at dst
func (s *Backend) Blit(dst image.Rectangle, img *image.RGBA) error {
	if s.renderer == nil {
		return bmr.ErrSurfaceUnavailable
	}
	if err := s.ensureTexture(img.Bounds().Size()); err != nil {
		return err
	}

	// ABGR8888 is R, G, B, A in memory on little-endian, the image.RGBA layout
	if err := s.texture.Update(nil, unsafe.Pointer(&img.Pix[0]), img.Stride); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	rect := sdl.Rect{X: int32(dst.Min.X), Y: int32(dst.Min.Y), W: int32(dst.Dx()), H: int32(dst.Dy())}
	s.renderer.Clear()
	if err := s.renderer.Copy(s.texture, nil, &rect); err != nil {
		return fmt.Errorf("failed to copy texture: %w", err)
	}
	s.renderer.Present()
	return nil
}

func (s *Backend) ensureTexture(size image.Point) error {
	if s.texture != nil && s.texSize == size {
		return nil
	}
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}

	texture, err := s.renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(size.X),
		int32(size.Y),
	)
	if err != nil {
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture
	s.texSize = size
	slog.Debug("Texture recreated", "width", size.X, "height", size.Y)
	return nil
}

// Update processes SDL events
func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}
	events := s.events
	s.events = nil
	return events, nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	for id, controller := range s.controllers {
		controller.Close()
		delete(s.controllers, id)
	}
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	sdl.Quit()
	return nil
}

func (s *Backend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.events = append(s.events, backend.Quit())

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			s.events = append(s.events, backend.Resized(int(e.Data1), int(e.Data2)))
		case sdl.WINDOWEVENT_EXPOSED:
			s.events = append(s.events, backend.Exposed())
		case sdl.WINDOWEVENT_CLOSE:
			s.events = append(s.events, backend.Quit())
		}

	case *sdl.KeyboardEvent:
		act, ok := keyMapping[e.Keysym.Sym]
		if !ok {
			return
		}
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			s.events = append(s.events, backend.Press(act))
		} else if e.Type == sdl.KEYUP && act.IsMovement() {
			// Only movement is level triggered
			s.events = append(s.events, backend.Release(act))
		}

	case *sdl.ControllerDeviceEvent:
		s.handleControllerDevice(e)

	case *sdl.ControllerButtonEvent:
		act, ok := buttonMapping[sdl.GameControllerButton(e.Button)]
		if !ok {
			return
		}
		if e.State == sdl.PRESSED {
			s.events = append(s.events, backend.Press(act))
		} else {
			s.events = append(s.events, backend.Release(act))
		}
	}
}

func (s *Backend) handleControllerDevice(e *sdl.ControllerDeviceEvent) {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		// Which is the device index here
		controller := sdl.GameControllerOpen(int(e.Which))
		if controller == nil {
			slog.Warn("Failed to open game controller", "index", e.Which, "error", sdl.GetError())
			return
		}
		id := controller.Joystick().InstanceID()
		s.controllers[id] = controller
		slog.Info("Game controller connected", "name", controller.Name(), "id", id)

	case sdl.CONTROLLERDEVICEREMOVED:
		// and the instance id here
		if controller, ok := s.controllers[e.Which]; ok {
			controller.Close()
			delete(s.controllers, e.Which)
			slog.Info("Game controller disconnected", "id", e.Which)
		}
	}
}

// sdlKeyNameMap converts SDL keys to key names used in default mappings
var sdlKeyNameMap = map[sdl.Keycode]string{
	sdl.K_UP:     "Up",
	sdl.K_DOWN:   "Down",
	sdl.K_LEFT:   "Left",
	sdl.K_RIGHT:  "Right",
	sdl.K_ESCAPE: "Escape",
	sdl.K_F12:    "F12",
}

// buildKeyMapping creates the key mapping from default mappings. Printable
// SDL keycodes are the characters themselves.
func buildKeyMapping() map[sdl.Keycode]action.Action {
	mapping := make(map[sdl.Keycode]action.Action)
	for key, keyName := range sdlKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}
	for keyName, act := range input.DefaultKeyMap {
		if r := []rune(keyName); len(r) == 1 {
			mapping[sdl.Keycode(r[0])] = act
		}
	}
	return mapping
}

var keyMapping = buildKeyMapping()

// buttonMapping maps the controller d-pad to player movement
var buttonMapping = map[sdl.GameControllerButton]action.Action{
	sdl.CONTROLLER_BUTTON_DPAD_UP:    action.PlayerUp,
	sdl.CONTROLLER_BUTTON_DPAD_DOWN:  action.PlayerDown,
	sdl.CONTROLLER_BUTTON_DPAD_LEFT:  action.PlayerLeft,
	sdl.CONTROLLER_BUTTON_DPAD_RIGHT: action.PlayerRight,
	sdl.CONTROLLER_BUTTON_BACK:       action.HostQuit,
}
