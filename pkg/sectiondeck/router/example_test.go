package router_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ScreenDeck router.Screen = iota
	ScreenCookies
)

type DeckAction int

const (
	DeckActionQuit DeckAction = iota
	DeckActionCookies
)

type DeckInput struct {
	Resume *DeckResume
}

type DeckResult struct {
	Action DeckAction
	Resume *DeckResume
}

type DeckResume struct {
	Section int
}

type CookiesResult struct {
	Saved bool
}

// Example shows the deck handing off to the cookie settings page and
// reopening on the section the visitor left from.
func Example() {
	r := router.New(nil)
	visits := 0

	r.Register(ScreenDeck, "deck", func(_ context.Context, input any) (any, error) {
		in := input.(DeckInput)
		visits++
		if visits == 1 {
			fmt.Println("Deck: opening cookie settings from section 3")
			return DeckResult{Action: DeckActionCookies, Resume: &DeckResume{Section: 3}}, nil
		}
		fmt.Printf("Deck: resumed at section %d, quitting\n", in.Resume.Section)
		return DeckResult{Action: DeckActionQuit}, nil
	})

	r.Register(ScreenCookies, "cookies", func(context.Context, any) (any, error) {
		fmt.Println("Cookies: saved")
		return CookiesResult{Saved: true}, nil
	})

	r.OnTransition(func(from router.Screen, result any, stack *router.Stack) (router.Screen, any) {
		switch from {
		case ScreenDeck:
			res := result.(DeckResult)
			if res.Action == DeckActionCookies {
				stack.Push(from, DeckInput{}, res.Resume)
				return ScreenCookies, nil
			}
		case ScreenCookies:
			if entry := stack.Pop(); entry != nil {
				in := entry.Input.(DeckInput)
				in.Resume = entry.Resume.(*DeckResume)
				return entry.Screen, in
			}
		}
		return router.ScreenExit, nil
	})

	_ = r.Run(context.Background(), ScreenDeck, DeckInput{})

	// Output:
	// Deck: opening cookie settings from section 3
	// Cookies: saved
	// Deck: resumed at section 3, quitting
}

func TestRunRequiresTransition(t *testing.T) {
	err := router.New(nil).Run(context.Background(), ScreenDeck, nil)
	assert.Error(t, err)
}

func TestRunUnregisteredScreen(t *testing.T) {
	r := router.New(nil).OnTransition(func(router.Screen, any, *router.Stack) (router.Screen, any) {
		return router.ScreenExit, nil
	})
	err := r.Run(context.Background(), ScreenCookies, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "screen(1)")
}

func TestRunWrapsScreenError(t *testing.T) {
	boom := errors.New("boom")
	r := router.New(nil).
		Register(ScreenDeck, "deck", func(context.Context, any) (any, error) { return nil, boom }).
		OnTransition(func(router.Screen, any, *router.Stack) (router.Screen, any) { return router.ScreenExit, nil })

	err := r.Run(context.Background(), ScreenDeck, nil)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "deck")
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r := router.New(nil).
		Register(ScreenDeck, "deck", func(context.Context, any) (any, error) {
			calls++
			cancel()
			return nil, nil
		}).
		OnTransition(func(router.Screen, any, *router.Stack) (router.Screen, any) { return ScreenDeck, nil })

	err := r.Run(ctx, ScreenDeck, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestStack(t *testing.T) {
	s := router.NewStack()
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.Pop())
	assert.Nil(t, s.Peek())

	s.Push(ScreenDeck, DeckInput{}, &DeckResume{Section: 1})
	s.Push(ScreenCookies, nil, nil)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, ScreenCookies, s.Peek().Screen)

	top := s.Pop()
	require.NotNil(t, top)
	assert.Equal(t, ScreenCookies, top.Screen)
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.True(t, s.IsEmpty())
}
