package main

import (
	"context"
	"testing"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/adapters/file"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/portable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesAreValidAndPersist(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, doc := range Templates() {
		require.NoError(t, portable.Validate(doc), doc.Name)

		receipt, err := store.Save(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, doc.ID, receipt.ID, "fixed ids overwrite on rerun")
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
