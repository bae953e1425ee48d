package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/histora/internal/core/domain"
)

func TestPutGetExists(t *testing.T) {
	store := NewObjectStore()
	ctx := context.Background()

	err := store.Put(ctx, "bills/congress_1/hr_1.txt", []byte("text"), "text/plain", map[string]string{"year": "1789"})
	require.NoError(t, err)

	ok, err := store.Exists(ctx, "bills/congress_1/hr_1.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	body, err := store.Get(ctx, "bills/congress_1/hr_1.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("text"), body)

	obj, ok := store.Object("bills/congress_1/hr_1.txt")
	require.True(t, ok)
	assert.Equal(t, "1789", obj.Metadata["year"])
	assert.Equal(t, "text/plain", obj.ContentType)
}

func TestGet_NotFound(t *testing.T) {
	store := NewObjectStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_PrefixFiltered(t *testing.T) {
	store := NewObjectStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "bills/congress_1/hr_1.txt", nil, "", nil))
	require.NoError(t, store.Put(ctx, "bills/congress_1/hr_2.txt", nil, "", nil))
	require.NoError(t, store.Put(ctx, "newspapers/batch-1/p.txt", nil, "", nil))

	keys, err := store.List(ctx, "bills/")
	require.NoError(t, err)
	assert.Equal(t, []string{"bills/congress_1/hr_1.txt", "bills/congress_1/hr_2.txt"}, keys)
}

func TestDelete_MissingKeyIsNoError(t *testing.T) {
	store := NewObjectStore()
	assert.NoError(t, store.Delete(context.Background(), "missing"))
}

func TestPut_CopiesBody(t *testing.T) {
	store := NewObjectStore()
	ctx := context.Background()
	body := []byte("original")
	require.NoError(t, store.Put(ctx, "k", body, "", nil))
	body[0] = 'X'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}
