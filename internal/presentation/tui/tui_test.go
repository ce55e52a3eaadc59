package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	rate := 0.125
	views := 1200.0
	doc := domain.Document{
		Name: "Launch | Q3",
		Nodes: []domain.NodeRecord{
			{ID: "ig", Kind: domain.KindSocial, DisplayName: "Instagram", Position: domain.Point{X: 100, Y: 100}, Scale: 1, IconTag: "instagram", OutgoingConnections: []string{"lp", "ghost"}},
			{ID: "lp", Kind: domain.KindWebPage, DisplayName: "Landing", Position: domain.Point{X: 300, Y: 80.5}, Scale: 1.5, IconTag: "landing-page", OutgoingConnections: []string{}, Color: domain.ColorBlue, Notes: "headline test", Stats: &domain.Stats{Views: &views, Rate: &rate}},
		},
	}

	md := Report(doc)

	assert.True(t, strings.HasPrefix(md, `# Launch \| Q3`))
	assert.Contains(t, md, "**2 steps**, **2 connections**")
	assert.Contains(t, md, "| 📸 Instagram (`ig`) | social | 100, 100 | 1.00 | default | - | - | - |")
	assert.Contains(t, md, "| web-page | 300, 80.5 | 1.50 | blue | 1200 | - | 12.5% |")
	assert.Contains(t, md, "- Instagram → Landing")
	assert.Contains(t, md, "- Instagram → `ghost` _(missing)_")
	assert.Contains(t, md, "**Entry points:** Instagram\n")
	assert.Contains(t, md, "- **Landing**: headline test")
}

func TestReport_Empty(t *testing.T) {
	md := Report(domain.Document{})
	assert.Equal(t, "# Untitled funnel\n\n_No steps yet._\n", md)
}

func TestRendererFor_NonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	out, err := RendererFor(&buf)("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer(60)
	require.NoError(t, err)
	out, err := r("# Launch\n\nsome text")
	require.NoError(t, err)
	assert.Contains(t, out, "Launch")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.4.0\n")
	assert.Contains(t, buf.String(), "funnel editor core v0.4.0")
	assert.Contains(t, buf.String(), "|___/")
}
