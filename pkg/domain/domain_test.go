package domain_test

import (
	"math"
	"testing"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, err := domain.ParseKind("web-page")
	require.NoError(t, err)
	assert.Equal(t, domain.KindWebPage, k)
	assert.Equal(t, "Web Page", k.DefaultName())

	_, err = domain.ParseKind("webinar")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestParseColor(t *testing.T) {
	c, err := domain.ParseColor("green")
	require.NoError(t, err)
	assert.Equal(t, domain.ColorGreen, c)

	_, err = domain.ParseColor("teal")
	assert.Error(t, err)
}

func TestTunables_Normalize(t *testing.T) {
	d := domain.DefaultTunables()

	tests := []struct {
		name string
		in   domain.Tunables
		want func(t *testing.T, got domain.Tunables)
	}{
		{
			name: "zero value gets defaults",
			in:   domain.Tunables{},
			want: func(t *testing.T, got domain.Tunables) {
				assert.Equal(t, d.ResizeStep, got.ResizeStep)
				assert.Equal(t, d.MinScale, got.MinScale)
				assert.Equal(t, d.MaxZoom, got.MaxZoom)
			},
		},
		{
			name: "inverted scale range is reset",
			in:   domain.Tunables{ResizeStep: 0.1, MinScale: 2, MaxScale: 1, MinZoom: 10, MaxZoom: 400},
			want: func(t *testing.T, got domain.Tunables) {
				assert.Equal(t, 0.1, got.ResizeStep)
				assert.Equal(t, domain.MinScale, got.MinScale)
				assert.Equal(t, domain.MaxScale, got.MaxScale)
				assert.Equal(t, 10.0, got.MinZoom)
				assert.Equal(t, 400.0, got.MaxZoom)
			},
		},
		{
			name: "negative history limit means unbounded",
			in:   domain.Tunables{HistoryLimit: -3},
			want: func(t *testing.T, got domain.Tunables) {
				assert.Zero(t, got.HistoryLimit)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, tt.in.Normalize())
		})
	}
}

func TestTunables_Clamp(t *testing.T) {
	tn := domain.DefaultTunables()
	assert.Equal(t, domain.MinScale, tn.ClampScale(0.1))
	assert.Equal(t, domain.MaxScale, tn.ClampScale(10))
	assert.Equal(t, 1.5, tn.ClampScale(1.5))
	assert.Equal(t, domain.MinZoom, tn.ClampZoom(math.NaN()))
	assert.Equal(t, domain.MaxZoom, tn.ClampZoom(500))
}

func TestDocument_CloneIsDeep(t *testing.T) {
	views := 10.0
	doc := domain.Document{Name: "f", Nodes: []domain.NodeRecord{
		{ID: "a", Kind: domain.KindSocial, OutgoingConnections: []string{"b"}, Stats: &domain.Stats{Views: &views}},
		{ID: "b", Kind: domain.KindWebPage},
	}}

	c := doc.Clone()
	c.Nodes[0].OutgoingConnections[0] = "x"
	*c.Nodes[0].Stats.Views = 99

	assert.Equal(t, "b", doc.Nodes[0].OutgoingConnections[0])
	assert.Equal(t, 10.0, *doc.Nodes[0].Stats.Views)

	n, ok := doc.Node("b")
	assert.True(t, ok)
	assert.Equal(t, domain.KindWebPage, n.Kind)
	_, ok = doc.Node("z")
	assert.False(t, ok)
}

func TestStep_CloneAndConnects(t *testing.T) {
	s := domain.NewStep("a", domain.KindConversionEvent, domain.Point{X: 1, Y: 2})
	assert.Equal(t, domain.DefaultScale, s.Scale)
	assert.Equal(t, domain.ColorDefault, s.Color)
	assert.Empty(t, s.Connections)

	s.Connections = append(s.Connections, "b")
	c := s.Clone()
	c.Connections[0] = "c"
	assert.True(t, s.ConnectsTo("b"))
	assert.False(t, s.ConnectsTo("c"))
}

func TestPoint_Arithmetic(t *testing.T) {
	p := domain.Point{X: 1, Y: 2}
	assert.Equal(t, domain.Point{X: 4, Y: 6}, p.Add(domain.Point{X: 3, Y: 4}))
	assert.Equal(t, domain.Point{X: 0, Y: 1}, p.Sub(domain.Point{X: 1, Y: 1}))
	assert.Equal(t, domain.Point{X: 2, Y: 4}, p.Scale(2))
}
