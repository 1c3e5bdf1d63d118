package export

// Package export archives consensus report documents to disk and exports the
// review table to XLSX. Archive tasks run in background goroutines, validate
// the fetched document against the report schema, and record finished files
// in a local history index.
