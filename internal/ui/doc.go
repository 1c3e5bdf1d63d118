package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the annotation server client and the report
// export service, and renders the per-job results table, the consensus
// configuration and settings forms, and notifications. All UI strings are
// localized via Localization.
