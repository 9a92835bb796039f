package constants

// Glyphs drawn by the terminal host and the SDL side nav.
const (
	DotActive   = "●" // Current section in the side nav
	DotInactive = "○" // Any other section
	ArrowNext   = "→" // Next button
	HoldBar     = "━" // Hold button progress segment
)
