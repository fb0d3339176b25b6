package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Text fragments
const (
	MiddleDotSeparator = " · "
	TitleSeparator     = " - "
)

// Layout sizing
const (
	RecentRowMinWidth float32 = 360
	SettingsWidth     float32 = 480
	SettingsHeight    float32 = 360
)

// Anchors on the home page
const (
	AnchorActions = "actions"
	AnchorRecent  = "recent"
)

// Status line messages clear after this delay
const (
	ToastAutoHide = 2 * time.Second
)
