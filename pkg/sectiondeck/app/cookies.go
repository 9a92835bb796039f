package app

import (
	"context"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/consent"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/internal"
)

// CookieRow is one line of the cookie settings page.
type CookieRow int

const (
	RowNecessary CookieRow = iota
	RowAnalytics
	RowMarketing
	RowSave
	RowAcceptAll
	RowRejectAll
)

var cookieRows = []CookieRow{RowNecessary, RowAnalytics, RowMarketing, RowSave, RowAcceptAll, RowRejectAll}

// MessageID returns the i18n message for the row label.
func (r CookieRow) MessageID() string {
	switch r {
	case RowNecessary:
		return "ConsentNecessary"
	case RowAnalytics:
		return "ConsentAnalytics"
	case RowMarketing:
		return "ConsentMarketing"
	case RowSave:
		return "ConsentSave"
	case RowAcceptAll:
		return "ConsentAcceptAll"
	default:
		return "ConsentRejectAll"
	}
}

// IsToggle reports whether the row shows a checkbox.
func (r CookieRow) IsToggle() bool {
	return r <= RowMarketing
}

// CookiesPage is the full-screen cookie settings view, reached from the
// banner's "customize" button or the cookie settings key.
type CookiesPage struct {
	banner *consent.Banner
	cursor int
	done   bool
	result CookiesResult
}

// NewCookiesPage opens the banner in customize mode with the cursor on the
// first editable row.
func NewCookiesPage(b *consent.Banner) *CookiesPage {
	b.Reopen()
	return &CookiesPage{banner: b, cursor: int(RowAnalytics)}
}

func (p *CookiesPage) Rows() []CookieRow { return cookieRows }
func (p *CookiesPage) Cursor() CookieRow { return cookieRows[p.cursor] }

// Checked returns the toggle state of a checkbox row.
func (p *CookiesPage) Checked(r CookieRow) bool {
	switch r {
	case RowNecessary:
		return true
	case RowAnalytics:
		return p.banner.Analytics()
	case RowMarketing:
		return p.banner.Marketing()
	default:
		return false
	}
}

// HandleKey moves the cursor or activates the row under it. Cancel and quit
// leave without saving.
func (p *CookiesPage) HandleKey(ctx context.Context, key constants.Key) error {
	if p.done {
		return nil
	}

	switch key {
	case constants.KeyPrevious:
		p.cursor = internal.Clamp(p.cursor-1, int(RowAnalytics), len(cookieRows)-1)
	case constants.KeyNext:
		p.cursor = internal.Clamp(p.cursor+1, int(RowAnalytics), len(cookieRows)-1)
	case constants.KeyFirst:
		p.cursor = int(RowAnalytics)
	case constants.KeyLast:
		p.cursor = len(cookieRows) - 1
	case constants.KeyConfirm, constants.KeyHold:
		return p.Activate(ctx, p.Cursor())
	case constants.KeyCancel, constants.KeyQuit, constants.KeyConsent:
		p.banner.Hide()
		p.done = true
	}
	return nil
}

// Activate performs a row's action, as a click or the confirm key does.
func (p *CookiesPage) Activate(ctx context.Context, r CookieRow) error {
	var err error
	switch r {
	case RowAnalytics:
		p.banner.ToggleAnalytics()
		return nil
	case RowMarketing:
		p.banner.ToggleMarketing()
		return nil
	case RowSave:
		err = p.banner.SavePreferences(ctx)
	case RowAcceptAll:
		err = p.banner.AcceptAll(ctx)
	case RowRejectAll:
		err = p.banner.RejectAll(ctx)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	p.done = true
	p.result = CookiesResult{Saved: true}
	return nil
}

// Done returns the result once the visitor has left the page.
func (p *CookiesPage) Done() (CookiesResult, bool) {
	return p.result, p.done
}
