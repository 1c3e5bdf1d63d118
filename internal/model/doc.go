package model

// Package model defines domain data structures used across the app: annotation
// jobs, consensus reports, consensus settings, and the derived review rows.
// Structures are designed for direct binding in the UI; shaping logic (row
// join, filter options, percent scaling, score banding) lives here as pure
// functions so it stays unit-testable.
