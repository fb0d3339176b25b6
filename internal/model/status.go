package model

// DocumentState represents the persistence state of the document in the editor
type DocumentState string

const (
	// DocumentUntitled means the buffer has never been saved to a file
	DocumentUntitled DocumentState = "Untitled"

	// DocumentClean means the buffer matches the file on disk
	DocumentClean DocumentState = "Clean"

	// DocumentModified means the buffer has unsaved changes
	DocumentModified DocumentState = "Modified"
)

// String returns the string representation of DocumentState
func (ds DocumentState) String() string {
	return string(ds)
}

// IsDirty returns true if saving would change the file on disk
func (ds DocumentState) IsDirty() bool {
	return ds == DocumentModified
}
