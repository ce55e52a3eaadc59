package history_test

import (
	"math"
	"testing"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWith(ids ...string) domain.Document {
	doc := domain.Document{Name: "funnel", Nodes: []domain.NodeRecord{}}
	for i, id := range ids {
		doc.Nodes = append(doc.Nodes, domain.NodeRecord{
			ID:                  id,
			Kind:                domain.KindWebPage,
			Position:            domain.Point{X: float64(i * 10), Y: 5},
			Scale:               1,
			IconTag:             "landing-page",
			OutgoingConnections: []string{},
		})
	}
	return doc
}

func TestManager_UndoRedoRoundTrip(t *testing.T) {
	d0, d1, d2 := docWith(), docWith("a"), docWith("a", "b")
	m, err := history.New(d0)
	require.NoError(t, err)
	require.NoError(t, m.Record(d1))
	require.NoError(t, m.Record(d2))
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Cursor())

	got, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, d1, got)

	got, ok = m.Undo()
	require.True(t, ok)
	assert.Equal(t, d0, got)

	_, ok = m.Undo()
	assert.False(t, ok, "cannot undo past the initial document")

	got, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, d1, got)
	got, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, d2, got)

	_, ok = m.Redo()
	assert.False(t, ok)
}

func TestManager_RecordTruncatesRedo(t *testing.T) {
	m, err := history.New(docWith())
	require.NoError(t, err)
	require.NoError(t, m.Record(docWith("a")))
	require.NoError(t, m.Record(docWith("a", "b")))

	_, ok := m.Undo()
	require.True(t, ok)
	require.True(t, m.CanRedo())

	branch := docWith("a", "c")
	require.NoError(t, m.Record(branch))
	assert.False(t, m.CanRedo())
	assert.Equal(t, 3, m.Len())

	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, branch, cur)
}

func TestManager_SnapshotsAreIndependent(t *testing.T) {
	doc := docWith("a")
	m, err := history.New(domain.Document{Name: "funnel", Nodes: []domain.NodeRecord{}})
	require.NoError(t, err)
	require.NoError(t, m.Record(doc))

	doc.Nodes[0].Position.X = 999
	doc.Nodes[0].OutgoingConnections = append(doc.Nodes[0].OutgoingConnections, "z")

	cur, _ := m.Current()
	assert.Equal(t, 0.0, cur.Nodes[0].Position.X)
	assert.Empty(t, cur.Nodes[0].OutgoingConnections)
}

func TestManager_Limit(t *testing.T) {
	m, err := history.New(docWith(), history.WithLimit(3))
	require.NoError(t, err)
	for _, ids := range [][]string{{"a"}, {"a", "b"}, {"a", "b", "c"}, {"a", "b", "c", "d"}} {
		require.NoError(t, m.Record(docWith(ids...)))
	}
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Cursor())

	_, ok := m.Undo()
	require.True(t, ok)
	oldest, ok := m.Undo()
	require.True(t, ok)
	assert.Len(t, oldest.Nodes, 2)
	assert.False(t, m.CanUndo())
}

func TestManager_EncodeFailureIsNoOp(t *testing.T) {
	m, err := history.New(docWith("a"))
	require.NoError(t, err)

	bad := docWith("a")
	bad.Nodes[0].Position.X = math.NaN()
	assert.Error(t, m.Record(bad))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Cursor())

	_, err = history.New(bad)
	assert.Error(t, err)
}

func TestManager_Reset(t *testing.T) {
	m, err := history.New(docWith())
	require.NoError(t, err)
	require.NoError(t, m.Record(docWith("a")))

	require.NoError(t, m.Reset(docWith("x", "y")))
	assert.Equal(t, 1, m.Len())
	assert.False(t, m.CanUndo())
	cur, _ := m.Current()
	assert.Len(t, cur.Nodes, 2)
}
