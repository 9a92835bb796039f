package router

import (
	"context"
	"fmt"
	"log/slog"
)

// Screen identifies a registered view. Applications declare their own
// constants with iota.
type Screen int

// ScreenExit ends Run without error.
const ScreenExit Screen = -1

// ScreenFunc runs a view until the visitor leaves it.
type ScreenFunc func(ctx context.Context, input any) (result any, err error)

// TransitionFunc picks the next view from the one that just returned.
// Returning ScreenExit stops the router.
type TransitionFunc func(from Screen, result any, stack *Stack) (next Screen, input any)

type route struct {
	name string
	fn   ScreenFunc
}

// Router runs registered views in the order the transition function decides.
type Router struct {
	routes     map[Screen]route
	transition TransitionFunc
	stack      *Stack
	logger     *slog.Logger
}

// New creates a Router. A nil logger discards transition logs.
func New(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Router{
		routes: make(map[Screen]route),
		stack:  NewStack(),
		logger: logger,
	}
}

// Register adds a view under screen. name is used in logs and errors.
func (r *Router) Register(screen Screen, name string, fn ScreenFunc) *Router {
	r.routes[screen] = route{name: name, fn: fn}
	return r
}

// OnTransition sets the routing logic.
func (r *Router) OnTransition(fn TransitionFunc) *Router {
	r.transition = fn
	return r
}

// Name returns the registered name of screen.
func (r *Router) Name(screen Screen) string {
	if screen == ScreenExit {
		return "exit"
	}
	if rt, ok := r.routes[screen]; ok {
		return rt.name
	}
	return fmt.Sprintf("screen(%d)", int(screen))
}

// Run starts at the given view and keeps going until the transition function
// returns ScreenExit, a view fails, or ctx is cancelled between views.
func (r *Router) Run(ctx context.Context, start Screen, input any) error {
	if r.transition == nil {
		return fmt.Errorf("router: no transition function set")
	}

	current := start
	currentInput := input

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rt, ok := r.routes[current]
		if !ok {
			return fmt.Errorf("router: %s not registered", r.Name(current))
		}

		result, err := rt.fn(ctx, currentInput)
		if err != nil {
			return fmt.Errorf("router: %s: %w", rt.name, err)
		}

		next, nextInput := r.transition(current, result, r.stack)
		r.logger.Debug("Screen transition",
			"from", rt.name,
			"to", r.Name(next),
			"depth", r.stack.Len())

		if next == ScreenExit {
			return nil
		}

		current = next
		currentInput = nextInput
	}
}

// Stack returns the navigation history.
func (r *Router) Stack() *Stack {
	return r.stack
}
