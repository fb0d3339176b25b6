package model

import "testing"

func TestDocumentState_IsDirty(t *testing.T) {
	tests := []struct {
		state    DocumentState
		expected bool
	}{
		{DocumentUntitled, false},
		{DocumentClean, false},
		{DocumentModified, true},
	}

	for _, test := range tests {
		result := test.state.IsDirty()
		if result != test.expected {
			t.Errorf("DocumentState(%s).IsDirty() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestDocumentState_String(t *testing.T) {
	state := DocumentModified
	expected := "Modified"
	result := state.String()

	if result != expected {
		t.Errorf("DocumentState.String() = %s, expected %s", result, expected)
	}
}
