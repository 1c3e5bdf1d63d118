package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconDownload = "⬇"
	IconInfo     = "ℹ"
	IconClose    = "×"
	IconError    = "❌"
	IconLanguage = "🌐"

	// Sort direction markers appended to the active header cell
	SortAscendingMarker  = " ▲"
	SortDescendingMarker = " ▼"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	FilterAllOption    = "All"
)

// Layout sizing (results table)
const (
	JobColumnWidth       float32 = 130
	StageColumnWidth     float32 = 120
	AssigneeColumnWidth  float32 = 170
	ConflictsColumnWidth float32 = 110
	ScoreColumnWidth     float32 = 90
	DownloadColumnWidth  float32 = 260

	TableHeaderHeight float32 = 32
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 320
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)
