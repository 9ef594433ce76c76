package model

import "strconv"

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconSelected   = "●" // Chip enabled
	IconUnselected = "○" // Chip disabled
	IconCollapsed  = "▸" // Details hidden
	IconExpanded   = "▾" // Details shown
	IconOngoing    = "…" // No end year
	IconRelated    = "→" // Cross reference
	IconTimeline   = "│" // Decade rail
)

// Version is the application version, overridden at link time.
var Version = "0.3.0"

func itoa(v int) string {
	return strconv.Itoa(v)
}
