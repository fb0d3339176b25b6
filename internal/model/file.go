package model

import (
	"path/filepath"
)

// FileRecord represents one previously opened file.
// FullPath is the identity key; DirName and BaseName are display fields only.
type FileRecord struct {
	FullPath string `json:"fullpath"`
	DirName  string `json:"dirname"`
	BaseName string `json:"basename"`
}

// NewFileRecord builds a record for path, deriving the display fields from it
func NewFileRecord(path string) FileRecord {
	clean := filepath.Clean(path)
	return FileRecord{
		FullPath: clean,
		DirName:  filepath.Dir(clean),
		BaseName: filepath.Base(clean),
	}
}

// SameFile reports whether both records point at the same full path
func (r FileRecord) SameFile(other FileRecord) bool {
	return r.FullPath == other.FullPath
}

// DisplayName returns the base name, falling back to the full path
func (r FileRecord) DisplayName() string {
	if r.BaseName != "" {
		return r.BaseName
	}
	return r.FullPath
}
