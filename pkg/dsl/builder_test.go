package dsl

import (
	"testing"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFunnel(t *testing.T) {
	doc, err := New("Webinar").
		Add("ig", domain.KindSocial).Name("Instagram").At(100, 100).Icon("instagram").To("lp").
		Add("lp", domain.KindWebPage).At(350, 80).Scale(1.5).To("buy", "buy").
		Add("buy", domain.KindConversionEvent).Name("Purchase").Color(domain.ColorGreen).Stats(1000, 120, 0.12).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "Webinar", doc.Name)
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, []string{"ig", "lp", "buy"}, []string{doc.Nodes[0].ID, doc.Nodes[1].ID, doc.Nodes[2].ID})

	ig := doc.Nodes[0]
	assert.Equal(t, "Instagram", ig.DisplayName)
	assert.Equal(t, domain.Point{X: 100, Y: 100}, ig.Position)
	assert.Equal(t, []string{"lp"}, ig.OutgoingConnections)

	lp := doc.Nodes[1]
	assert.Equal(t, domain.KindWebPage.DefaultName(), lp.DisplayName)
	assert.Equal(t, 1.5, lp.Scale)
	assert.Equal(t, []string{"buy"}, lp.OutgoingConnections, "duplicate targets collapse")

	buy := doc.Nodes[2]
	assert.Equal(t, domain.ColorGreen, buy.Color)
	require.NotNil(t, buy.Stats)
	assert.Equal(t, 0.12, *buy.Stats.Rate)
	assert.Empty(t, buy.OutgoingConnections)
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New("f")
	first := b.Add("a", domain.KindSocial).Name("A")
	again := b.Add("a", domain.KindWebPage)

	assert.Same(t, first, again)
	doc, err := b.Build()
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, domain.KindSocial, doc.Nodes[0].Kind)
}

func TestBuilder_RejectsCycle(t *testing.T) {
	_, err := New("loop").
		Add("a", domain.KindSocial).To("b").
		Add("b", domain.KindWebPage).To("a").
		Build()
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestBuilder_BuildIsolatesDocument(t *testing.T) {
	b := New("f")
	b.Add("a", domain.KindSocial).To("b")
	b.Add("b", domain.KindWebPage)

	doc := b.MustBuild()
	doc.Nodes[0].OutgoingConnections[0] = "mutated"

	again := b.MustBuild()
	assert.Equal(t, []string{"b"}, again.Nodes[0].OutgoingConnections)
}

func TestMustBuild_Panics(t *testing.T) {
	b := New("bad")
	b.Add("a", domain.Kind("billboard"))
	assert.Panics(t, func() { b.MustBuild() })
}
