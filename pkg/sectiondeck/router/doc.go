// Package router sequences the full-screen views of the site (the deck and the
// cookie settings page) with explicit inputs and results.
//
// Every view is a ScreenFunc that blocks until the visitor leaves it and
// returns a result. A single TransitionFunc looks at that result and decides
// what runs next, pushing the departing view onto a Stack when the visitor is
// expected to come back to it.
//
//	r := router.New(logger)
//	r.Register(ScreenDeck, "deck", runDeck)
//	r.Register(ScreenCookies, "cookies", runCookies)
//	r.OnTransition(func(from router.Screen, result any, stack *router.Stack) (router.Screen, any) {
//	    switch from {
//	    case ScreenDeck:
//	        res := result.(DeckResult)
//	        if res.Action == DeckActionCookies {
//	            stack.Push(from, DeckInput{}, res.Resume)
//	            return ScreenCookies, nil
//	        }
//	    case ScreenCookies:
//	        if entry := stack.Pop(); entry != nil {
//	            return entry.Screen, DeckInput{Resume: entry.Resume.(*DeckResume)}
//	        }
//	    }
//	    return router.ScreenExit, nil
//	})
//	err := r.Run(ctx, ScreenDeck, DeckInput{})
//
// # Resume State
//
// A view that can be returned to reports where the visitor was (for the deck,
// the current section) as resume state. The transition function stores it on
// the stack and hands it back in the input when popping, so the deck reopens
// on the same section rather than the first one.
package router
