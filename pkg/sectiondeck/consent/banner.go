// Package consent implements the cookie banner shown on a first visit.
package consent

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/prefs"
)

// Banner holds the banner's visibility and the category toggles.
type Banner struct {
	store  prefs.Store
	now    func() time.Time
	logger *slog.Logger

	visible   bool
	showAt    time.Time
	customize bool
	analytics bool
	marketing bool
}

// Options configures a Banner.
type Options struct {
	Delay  time.Duration    // Wait before the banner appears; defaults to 1s
	Now    func() time.Time // Defaults to time.Now
	Logger *slog.Logger
}

// New reads the stored consent once. With nothing stored the banner becomes
// visible after the delay; a stored choice restores the toggles and keeps it
// hidden. A stored value that cannot be decoded is logged and otherwise
// treated like a stored choice with everything off.
func New(ctx context.Context, store prefs.Store, opts Options) (*Banner, error) {
	if opts.Delay <= 0 {
		opts.Delay = constants.DefaultConsentDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	b := &Banner{store: store, now: opts.Now, logger: opts.Logger}

	stored, ok, err := prefs.LoadConsent(ctx, store)
	switch {
	case errors.Is(err, prefs.ErrMalformed):
		b.logger.Warn("Ignoring stored consent", "error", err)
	case err != nil:
		return nil, err
	case ok:
		b.analytics = stored.Analytics
		b.marketing = stored.Marketing
	default:
		b.showAt = b.now().Add(opts.Delay)
	}

	return b, nil
}

// Update makes a pending banner visible once its delay has passed. Hosts call
// it every frame.
func (b *Banner) Update() {
	if !b.showAt.IsZero() && !b.now().Before(b.showAt) {
		b.visible = true
		b.showAt = time.Time{}
	}
}

// Pending reports whether the banner is waiting to appear or showing.
func (b *Banner) Pending() bool {
	return b.visible || !b.showAt.IsZero()
}

func (b *Banner) Visible() bool   { return b.visible }
func (b *Banner) Customize() bool { return b.customize }
func (b *Banner) Analytics() bool { return b.analytics }
func (b *Banner) Marketing() bool { return b.marketing }

func (b *Banner) ToggleCustomize() { b.customize = !b.customize }
func (b *Banner) ToggleAnalytics() { b.analytics = !b.analytics }
func (b *Banner) ToggleMarketing() { b.marketing = !b.marketing }

// AcceptAll enables every category and saves.
func (b *Banner) AcceptAll(ctx context.Context) error {
	b.analytics = true
	b.marketing = true
	return b.save(ctx)
}

// RejectAll disables every optional category and saves.
func (b *Banner) RejectAll(ctx context.Context) error {
	b.analytics = false
	b.marketing = false
	return b.save(ctx)
}

// SavePreferences saves the current toggles.
func (b *Banner) SavePreferences(ctx context.Context) error {
	return b.save(ctx)
}

// Reopen shows the banner again with the current toggles, for the
// "cookie settings" entry point.
func (b *Banner) Reopen() {
	b.visible = true
	b.customize = true
	b.showAt = time.Time{}
}

// Hide closes the banner without saving. The toggles keep their values.
func (b *Banner) Hide() {
	b.visible = false
	b.customize = false
	b.showAt = time.Time{}
}

// Consent returns the choice the toggles represent.
func (b *Banner) Consent() prefs.Consent {
	return prefs.Consent{Necessary: true, Analytics: b.analytics, Marketing: b.marketing}
}

func (b *Banner) save(ctx context.Context) error {
	if err := prefs.SaveConsent(ctx, b.store, b.Consent()); err != nil {
		return err
	}
	b.visible = false
	b.customize = false
	b.showAt = time.Time{}
	b.logger.Info("Cookie consent saved", "analytics", b.analytics, "marketing", b.marketing)
	return nil
}
