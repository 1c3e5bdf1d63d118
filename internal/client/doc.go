package client

// Package client implements the HTTP client for the annotation server's
// consensus REST surface: jobs, consensus reports, consensus settings, and
// report documents. All calls are context-aware and return typed errors the
// UI can branch on.
