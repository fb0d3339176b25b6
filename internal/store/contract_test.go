package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every backend must share
func runContract(t *testing.T, open func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		value, found, err := s.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		require.NoError(t, s.Set(ctx, "k", []byte(`["a","b"]`)))
		value, found, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `["a","b"]`, string(value))

		require.NoError(t, s.Save(ctx))
		value, found, err = s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `["a","b"]`, string(value))
	})

	t.Run("overwrite", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		require.NoError(t, s.Set(ctx, "k", []byte(`1`)))
		require.NoError(t, s.Save(ctx))
		require.NoError(t, s.Set(ctx, "k", []byte(`2`)))
		require.NoError(t, s.Save(ctx))

		value, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.JSONEq(t, `2`, string(value))
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		require.NoError(t, s.Set(ctx, "k", []byte(`"abc"`)))
		value, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		value[1] = 'z'

		again, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, `"abc"`, string(again))
	})

	t.Run("closed", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Close())

		_, _, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrClosed)
		assert.ErrorIs(t, s.Set(ctx, "k", []byte(`1`)), ErrClosed)
		assert.ErrorIs(t, s.Save(ctx), ErrClosed)
		assert.NoError(t, s.Close(), "second Close")
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, s.Set(cctx, "k", []byte(`1`)), context.Canceled)
	})
}
