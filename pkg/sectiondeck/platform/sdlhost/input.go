package sdlhost

import (
	"log/slog"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/veandco/go-sdl2/sdl"
)

// wheelPixels is the delta one SDL wheel notch stands for. It is above the
// default wheel threshold so a single notch moves one section.
const wheelPixels = 40.0

// InputEvent is a key or button mapped to a navigation Key.
type InputEvent struct {
	Key     constants.Key
	Pressed bool
	Repeat  bool
}

// InputProcessor maps keyboard and game controller events to Keys.
type InputProcessor struct {
	keys        map[sdl.Keycode]constants.Key
	buttons     map[sdl.GameControllerButton]constants.Key
	controllers map[sdl.JoystickID]*sdl.GameController
	logger      *slog.Logger
}

func defaultKeyBindings() map[sdl.Keycode]constants.Key {
	return map[sdl.Keycode]constants.Key{
		sdl.K_RIGHT:     constants.KeyNext,
		sdl.K_DOWN:      constants.KeyNext,
		sdl.K_PAGEDOWN:  constants.KeyNext,
		sdl.K_LEFT:      constants.KeyPrevious,
		sdl.K_UP:        constants.KeyPrevious,
		sdl.K_PAGEUP:    constants.KeyPrevious,
		sdl.K_HOME:      constants.KeyFirst,
		sdl.K_END:       constants.KeyLast,
		sdl.K_SPACE:     constants.KeyHold,
		sdl.K_RETURN:    constants.KeyConfirm,
		sdl.K_n:         constants.KeyCancel,
		sdl.K_BACKSPACE: constants.KeyCancel,
		sdl.K_p:         constants.KeyCustomize,
		sdl.K_c:         constants.KeyConsent,
		sdl.K_l:         constants.KeyLanguage,
		sdl.K_ESCAPE:    constants.KeyQuit,
		sdl.K_q:         constants.KeyQuit,
	}
}

// Handheld layout: the d-pad navigates and A is the hold button.
func defaultButtonBindings() map[sdl.GameControllerButton]constants.Key {
	return map[sdl.GameControllerButton]constants.Key{
		sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    constants.KeyNext,
		sdl.CONTROLLER_BUTTON_DPAD_DOWN:     constants.KeyNext,
		sdl.CONTROLLER_BUTTON_DPAD_LEFT:     constants.KeyPrevious,
		sdl.CONTROLLER_BUTTON_DPAD_UP:       constants.KeyPrevious,
		sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  constants.KeyFirst,
		sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: constants.KeyLast,
		sdl.CONTROLLER_BUTTON_A:             constants.KeyHold,
		sdl.CONTROLLER_BUTTON_X:             constants.KeyConfirm,
		sdl.CONTROLLER_BUTTON_B:             constants.KeyCancel,
		sdl.CONTROLLER_BUTTON_Y:             constants.KeyLanguage,
		sdl.CONTROLLER_BUTTON_START:         constants.KeyConsent,
		sdl.CONTROLLER_BUTTON_BACK:          constants.KeyQuit,
	}
}

// NewInputProcessor builds the keyboard map. overrides replaces every
// default key of the listed actions with the named SDL keys ("Right",
// "Page Down", "Q").
func NewInputProcessor(overrides map[constants.Key][]string, logger *slog.Logger) *InputProcessor {
	keys := defaultKeyBindings()

	for action, names := range overrides {
		if len(names) == 0 {
			continue
		}
		for code, k := range keys {
			if k == action {
				delete(keys, code)
			}
		}
		for _, name := range names {
			code := sdl.GetKeyFromName(name)
			if code == sdl.K_UNKNOWN {
				logger.Warn("Unknown key name in bindings", "action", action.GetName(), "key", name)
				continue
			}
			keys[code] = action
		}
	}

	return &InputProcessor{
		keys:        keys,
		buttons:     defaultButtonBindings(),
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
		logger:      logger,
	}
}

// Process maps an SDL event. It returns nil for events that are not bound
// keys or buttons. Controller hot-plug events are handled here as well.
func (p *InputProcessor) Process(event sdl.Event) *InputEvent {
	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		k, ok := p.keys[e.Keysym.Sym]
		if !ok {
			return nil
		}
		return &InputEvent{
			Key:     k,
			Pressed: e.State == sdl.PRESSED,
			Repeat:  e.Repeat != 0,
		}

	case *sdl.ControllerButtonEvent:
		k, ok := p.buttons[sdl.GameControllerButton(e.Button)]
		if !ok {
			return nil
		}
		return &InputEvent{Key: k, Pressed: e.State == sdl.PRESSED}

	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			p.openController(int(e.Which))
		case sdl.CONTROLLERDEVICEREMOVED:
			p.closeController(sdl.JoystickID(e.Which))
		}
	}
	return nil
}

func (p *InputProcessor) openController(index int) {
	if !sdl.IsGameController(index) {
		return
	}
	gc := sdl.GameControllerOpen(index)
	if gc == nil {
		p.logger.Warn("Failed to open game controller", "index", index, "error", sdl.GetError())
		return
	}
	id := gc.Joystick().InstanceID()
	p.controllers[id] = gc
	p.logger.Debug("Game controller connected", "name", gc.Name(), "id", id)
}

func (p *InputProcessor) closeController(id sdl.JoystickID) {
	if gc, ok := p.controllers[id]; ok {
		gc.Close()
		delete(p.controllers, id)
	}
}

// Close releases every open controller.
func (p *InputProcessor) Close() {
	for id := range p.controllers {
		p.closeController(id)
	}
}

// wheelDelta converts an SDL wheel event into page-style deltas, positive
// meaning down or right.
func wheelDelta(e *sdl.MouseWheelEvent) (dx, dy float64) {
	dx = float64(e.X) * wheelPixels
	dy = -float64(e.Y) * wheelPixels
	if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
		dx, dy = -dx, -dy
	}
	return dx, dy
}
