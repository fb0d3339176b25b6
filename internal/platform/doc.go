package platform

// Package platform contains OS integration glue: application data directories,
// filesystem helpers with atomic writes, and OS open/reveal for files.
