package sectiondeck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideNavFollowsController(t *testing.T) {
	c, _, clock, _ := newDeck(t, 5, nil)
	nav := NewSideNav(c)

	assert.Equal(t, "01 / 05", nav.Label())
	assert.Equal(t, []bool{true, false, false, false, false}, nav.Dots())
	assert.True(t, nav.HasNext())

	require.True(t, nav.Click(3))
	assert.Equal(t, 3, nav.Current())
	assert.Equal(t, "04 / 05", nav.Label())
	assert.Equal(t, []bool{false, false, false, true, false}, nav.Dots())

	// clicks during the transition are dropped, the label does not move
	assert.False(t, nav.Click(0))
	assert.Equal(t, 3, nav.Current())

	clock.Advance(time.Second)
	require.True(t, nav.Next())
	assert.Equal(t, 4, nav.Current())
	assert.False(t, nav.HasNext())
}

func TestSideNavDetach(t *testing.T) {
	c, _, _, _ := newDeck(t, 3, nil)
	nav := NewSideNav(c)
	nav.Detach()
	nav.Detach()

	c.RequestGoTo(2)
	assert.Equal(t, 0, nav.Current())
}

func TestSideNavEmpty(t *testing.T) {
	c, _, _, _ := newDeck(t, 0, nil)
	nav := NewSideNav(c)

	assert.Empty(t, nav.Label())
	assert.Empty(t, nav.Dots())
	assert.False(t, nav.HasNext())
}

func TestHoldButtonCompletes(t *testing.T) {
	clock := newFakeClock()
	fired := 0
	hb := NewHoldButton(nil, func() { fired++ }, time.Second, clock)

	require.True(t, hb.Press())
	assert.False(t, hb.Press())

	clock.Advance(400 * time.Millisecond)
	assert.InDelta(t, 0.4, hb.Progress(), 1e-9)
	assert.False(t, hb.Update())

	clock.Advance(600 * time.Millisecond)
	assert.True(t, hb.Update())
	assert.Equal(t, 1, fired)
	assert.False(t, hb.Pressed())
	assert.False(t, hb.Update())
}

func TestHoldButtonReleaseCancels(t *testing.T) {
	clock := newFakeClock()
	fired := 0
	hb := NewHoldButton(nil, func() { fired++ }, time.Second, clock)

	hb.Press()
	clock.Advance(900 * time.Millisecond)
	hb.Release()
	clock.Advance(time.Second)

	assert.False(t, hb.Update())
	assert.Zero(t, fired)
	assert.Zero(t, hb.Progress())
}

func TestHoldButtonOnlyInActiveSection(t *testing.T) {
	c, _, clock, _ := newDeck(t, 3, nil)
	hb := NewHoldButton(c.ActiveQuery(1), func() { c.Next() }, time.Second, clock)

	assert.False(t, hb.KeyDown(false))
	assert.False(t, hb.Pressed())

	c.RequestGoTo(1)
	clock.Advance(time.Second)

	assert.True(t, hb.KeyDown(false))
	// repeats while held stay with the button
	assert.True(t, hb.KeyDown(true))
	clock.Advance(time.Second)
	assert.True(t, hb.Update())
	assert.Equal(t, 2, c.Current())

	hb.KeyUp()
	assert.False(t, hb.KeyDown(true))
}
