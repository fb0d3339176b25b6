package store

// Package store provides the persistent key-value store behind the app's saved
// state. A Store is addressed by a fixed identifier, holds JSON documents under
// string keys, and separates writes (Set) from the durable commit (Save).
// Backends: a JSON file (default), SQLite via modernc.org/sqlite, Fyne
// preferences, and an in-memory map for tests and ephemeral runs.
