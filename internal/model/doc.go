package model

// Package model defines domain data structures shared across the app: records of
// recently opened files and the state of the document being edited. Structures
// are plain values so they can be persisted and bound in the UI directly.
