package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	var r Repository = NewMemoryRepository()
	ctx := context.Background()

	v, err := r.Get(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, v)

	in := []byte("tok")
	require.NoError(t, r.Set(ctx, "session_token", in))
	in[0] = 'X'

	v, err = r.Get(ctx, "session_token")
	require.NoError(t, err)
	require.Equal(t, "tok", string(v))

	require.NoError(t, r.Set(ctx, "baby_id", []byte("b1")))
	require.NoError(t, r.Delete(ctx, "session_token", "nope"))

	m, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string][]byte{"baby_id": []byte("b1")}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	require.Empty(t, m)
}
