package sdlhost

import (
	"log/slog"
	"sync"

	"github.com/holoplot/go-evdev"
)

// touchSample is a finger going down or up, in coordinates normalized to
// [0, 1] of the panel.
type touchSample struct {
	Down bool
	X, Y float64
}

// touchTracker assembles evdev events into samples, one per SYN_REPORT that
// changed the contact state.
type touchTracker struct {
	minX, maxX int32
	minY, maxY int32

	x, y    int32
	down    bool
	changed bool
}

func newTouchTracker(abs map[evdev.EvCode]evdev.AbsInfo) *touchTracker {
	t := &touchTracker{maxX: 1, maxY: 1}
	for _, code := range []evdev.EvCode{evdev.ABS_MT_POSITION_X, evdev.ABS_X} {
		if info, ok := abs[code]; ok && info.Maximum > info.Minimum {
			t.minX, t.maxX = info.Minimum, info.Maximum
			break
		}
	}
	for _, code := range []evdev.EvCode{evdev.ABS_MT_POSITION_Y, evdev.ABS_Y} {
		if info, ok := abs[code]; ok && info.Maximum > info.Minimum {
			t.minY, t.maxY = info.Minimum, info.Maximum
			break
		}
	}
	return t
}

func (t *touchTracker) feed(ev *evdev.InputEvent) (touchSample, bool) {
	switch ev.Type {
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_MT_POSITION_X, evdev.ABS_X:
			t.x = ev.Value
		case evdev.ABS_MT_POSITION_Y, evdev.ABS_Y:
			t.y = ev.Value
		}

	case evdev.EV_KEY:
		if ev.Code == evdev.BTN_TOUCH {
			t.down = ev.Value != 0
			t.changed = true
		}

	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT && t.changed {
			t.changed = false
			return touchSample{Down: t.down, X: t.norm(t.x, t.minX, t.maxX), Y: t.norm(t.y, t.minY, t.maxY)}, true
		}
	}
	return touchSample{}, false
}

func (t *touchTracker) norm(v, lo, hi int32) float64 {
	n := float64(v-lo) / float64(hi-lo)
	return min(1, max(0, n))
}

// touchReader reads a touchscreen node directly, for handhelds where SDL
// gets no finger events. Samples arrive on C; the UI loop drains it.
type touchReader struct {
	C chan touchSample

	dev    *evdev.InputDevice
	wg     sync.WaitGroup
	logger *slog.Logger
}

func openTouchReader(path string, logger *slog.Logger) (*touchReader, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, err
	}

	abs, err := dev.AbsInfos()
	if err != nil {
		dev.Close()
		return nil, err
	}

	r := &touchReader{
		C:      make(chan touchSample, 16),
		dev:    dev,
		logger: logger,
	}

	r.wg.Add(1)
	go r.run(newTouchTracker(abs))

	name, _ := dev.Name()
	logger.Debug("Touch device opened", "path", path, "name", name)
	return r, nil
}

func (r *touchReader) run(tracker *touchTracker) {
	defer r.wg.Done()
	defer close(r.C)

	for {
		ev, err := r.dev.ReadOne()
		if err != nil {
			r.logger.Debug("Touch reader stopped", "error", err)
			return
		}
		if sample, ok := tracker.feed(ev); ok {
			select {
			case r.C <- sample:
			default:
				r.logger.Debug("Dropping touch sample, UI loop is behind")
			}
		}
	}
}

// Close stops the reader and waits for its goroutine.
func (r *touchReader) Close() {
	r.dev.Close()
	r.wg.Wait()
}
