package platform

// Package platform contains OS integration glue: filesystem helpers and
// OS open/reveal for archived report files.
