package mermaid

import (
	"fmt"
	"strings"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/icons"
)

// Overlay highlights part of the funnel.
type Overlay struct {
	Selected []string
}

// classes per palette color. Text stays black so it reads on light and dark themes.
var classes = map[domain.Color]string{
	domain.ColorBlue:   "fill:#dbeafe,stroke:#2563eb,color:#000",
	domain.ColorGreen:  "fill:#dcfce7,stroke:#16a34a,color:#000",
	domain.ColorPurple: "fill:#f3e8ff,stroke:#9333ea,color:#000",
	domain.ColorOrange: "fill:#ffedd5,stroke:#ea580c,color:#000",
	domain.ColorRed:    "fill:#fee2e2,stroke:#dc2626,color:#000",
	domain.ColorPink:   "fill:#fce7f3,stroke:#db2777,color:#000",
	domain.ColorYellow: "fill:#fef9c3,stroke:#ca8a04,color:#000",
	domain.ColorGray:   "fill:#f3f4f6,stroke:#4b5563,color:#000",
}

// Generate produces a left-to-right Mermaid flowchart of the document.
// Shapes follow the step kind:
// - Social: ((Circle))
// - Web page: [Rectangle]
// - Marketing action: {{Hexagon}}
// - Conversion event: ([Stadium])
// Connections to unknown steps are omitted.
func Generate(doc domain.Document, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	known := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		known[n.ID] = true
	}

	used := make(map[domain.Color][]string)
	for _, n := range doc.Nodes {
		safeID := sanitizeID(n.ID)
		opener, closer := shape(n.Kind)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label(n), closer))
		if _, ok := classes[n.Color]; ok {
			used[n.Color] = append(used[n.Color], safeID)
		}
	}

	for _, n := range doc.Nodes {
		for _, to := range n.OutgoingConnections {
			if !known[to] {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeID(n.ID), sanitizeID(to)))
		}
	}

	if len(used) > 0 {
		sb.WriteString("\n    %% Palette\n")
		for _, c := range domain.Palette {
			ids, ok := used[c]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("    classDef %s %s;\n", c, classes[c]))
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", strings.Join(ids, ","), c))
		}
	}

	if overlay != nil && len(overlay.Selected) > 0 {
		var ids []string
		for _, id := range overlay.Selected {
			if known[id] {
				ids = append(ids, sanitizeID(id))
			}
		}
		if len(ids) > 0 {
			sb.WriteString("\n    %% Overlay Styles\n")
			sb.WriteString("    classDef selected stroke:#f59e0b,stroke-width:4px;\n")
			sb.WriteString(fmt.Sprintf("    class %s selected;\n", strings.Join(ids, ",")))
		}
	}

	return sb.String()
}

func shape(k domain.Kind) (string, string) {
	switch k {
	case domain.KindSocial:
		return "((", "))"
	case domain.KindMarketingAction:
		return "{{", "}}"
	case domain.KindConversionEvent:
		return "([", "])"
	default:
		return "[", "]"
	}
}

func label(n domain.NodeRecord) string {
	name := n.Label
	if name == "" {
		name = n.DisplayName
	}
	if name == "" {
		name = n.Kind.DefaultName()
	}
	tag := n.IconTag
	if tag == "" {
		tag = icons.Infer(n.Kind, n.ID, name)
	}
	text := icons.Resolve(tag).Symbol + " " + name
	if n.Stats != nil && n.Stats.Rate != nil {
		text += fmt.Sprintf(" <br/> %.1f%%", *n.Stats.Rate*100)
	}
	return strings.ReplaceAll(text, "\"", "'")
}

// sanitizeID maps an arbitrary step id onto a Mermaid-safe identifier.
// The prefix keeps ids like "end" or "1" from clashing with Mermaid syntax.
func sanitizeID(id string) string {
	var sb strings.Builder
	sb.WriteString("n_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
