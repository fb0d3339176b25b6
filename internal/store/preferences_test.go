package store

import (
	"context"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesStore_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) Store {
		return NewPreferencesStore(test.NewTempApp(t).Preferences(), DefaultName)
	})
}

func TestPreferencesStore_KeyPrefix(t *testing.T) {
	ctx := context.Background()
	app := test.NewTempApp(t)
	s := NewPreferencesStore(app.Preferences(), DefaultName)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "KEY", []byte(`[]`)))
	assert.Equal(t, `[]`, app.Preferences().String(DefaultName+"/KEY"))
}
