package recent

// Package recent tracks the files the user opened recently. The list lives in a
// single store key, keeps insertion order and holds at most one entry per full
// path. Every change is a full read-modify-write-commit against the store; there
// is no cache between calls and no locking, so concurrent writers race and the
// last one to save wins.
