package ports

import (
	"context"
	"testing"
	"time"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDocument(name string) domain.Document {
	rate := 0.25
	return domain.Document{
		Name: name,
		Nodes: []domain.NodeRecord{
			{
				ID:                  "ig",
				Kind:                domain.KindSocial,
				DisplayName:         "Instagram",
				Position:            domain.Point{X: 100, Y: 100},
				Scale:               1,
				IconTag:             "instagram",
				OutgoingConnections: []string{"lp"},
				Color:               domain.ColorPink,
			},
			{
				ID:                  "lp",
				Kind:                domain.KindWebPage,
				DisplayName:         "Landing Page",
				Position:            domain.Point{X: 300, Y: 80},
				Scale:               1.5,
				IconTag:             "landing-page",
				OutgoingConnections: []string{},
				Color:               domain.ColorDefault,
				Notes:               "headline test",
				Stats:               &domain.Stats{Rate: &rate},
			},
		},
	}
}

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	suffix := time.Now().Format("20060102150405.000000000")

	t.Run("Save and Load", func(t *testing.T) {
		doc := contractDocument("contract " + suffix)

		receipt, err := store.Save(ctx, doc)
		require.NoError(t, err, "Save should not return error")
		require.NotEmpty(t, receipt.ID, "Save should assign an id")
		assert.False(t, receipt.SavedAt.IsZero())

		loaded, err := store.Load(ctx, receipt.ID)
		require.NoError(t, err, "Load should not return error")

		doc.ID = receipt.ID
		assert.Equal(t, doc, loaded)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		doc := contractDocument("overwrite " + suffix)
		receipt, err := store.Save(ctx, doc)
		require.NoError(t, err)

		doc.ID = receipt.ID
		doc.Name = "renamed " + suffix
		doc.Nodes = doc.Nodes[:1]
		again, err := store.Save(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, receipt.ID, again.ID)

		loaded, err := store.Load(ctx, receipt.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed "+suffix, loaded.Name)
		assert.Len(t, loaded.Nodes, 1)
	})

	t.Run("Load Returns A Copy", func(t *testing.T) {
		receipt, err := store.Save(ctx, contractDocument("copy "+suffix))
		require.NoError(t, err)

		first, err := store.Load(ctx, receipt.ID)
		require.NoError(t, err)
		first.Nodes[0].OutgoingConnections[0] = "mutated"

		second, err := store.Load(ctx, receipt.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"lp"}, second.Nodes[0].OutgoingConnections)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+suffix)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		receipt, err := store.Save(ctx, contractDocument("delete "+suffix))
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, receipt.ID), "Delete should not return error")

		_, err = store.Load(ctx, receipt.ID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.ErrorIs(t, store.Delete(ctx, receipt.ID), domain.ErrDocumentNotFound)
	})

	t.Run("List", func(t *testing.T) {
		r1, err := store.Save(ctx, contractDocument("list-1 "+suffix))
		require.NoError(t, err)
		r2, err := store.Save(ctx, contractDocument("list-2 "+suffix))
		require.NoError(t, err)
		defer func() {
			_ = store.Delete(ctx, r1.ID)
			_ = store.Delete(ctx, r2.ID)
		}()

		summaries, err := store.List(ctx)
		require.NoError(t, err)

		byID := make(map[string]Summary)
		for _, s := range summaries {
			byID[s.ID] = s
		}
		require.Contains(t, byID, r1.ID)
		require.Contains(t, byID, r2.ID)
		assert.Equal(t, "list-2 "+suffix, byID[r2.ID].Name)
		assert.Equal(t, 2, byID[r2.ID].Steps)
	})
}
