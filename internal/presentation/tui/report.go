package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/icons"
)

// Report renders a markdown summary of a funnel: a steps table, the
// connection list, entry points and per step notes.
func Report(doc domain.Document) string {
	var sb strings.Builder

	name := doc.Name
	if name == "" {
		name = "Untitled funnel"
	}
	fmt.Fprintf(&sb, "# %s\n\n", escape(name))

	if len(doc.Nodes) == 0 {
		sb.WriteString("_No steps yet._\n")
		return sb.String()
	}

	byID := make(map[string]domain.NodeRecord, len(doc.Nodes))
	incoming := make(map[string]int, len(doc.Nodes))
	edges := 0
	for _, n := range doc.Nodes {
		byID[n.ID] = n
		edges += len(n.OutgoingConnections)
		for _, to := range n.OutgoingConnections {
			incoming[to]++
		}
	}
	fmt.Fprintf(&sb, "**%s**, **%s**\n\n", plural(len(doc.Nodes), "step"), plural(edges, "connection"))

	sb.WriteString("## Steps\n\n")
	sb.WriteString("| Step | Kind | Position | Scale | Color | Views | Conversions | Rate |\n")
	sb.WriteString("|------|------|----------|-------|-------|-------|-------------|------|\n")
	for _, n := range doc.Nodes {
		color := n.Color
		if color == "" {
			color = domain.ColorDefault
		}
		var views, conv, rate string
		if n.Stats != nil {
			views, conv = number(n.Stats.Views), number(n.Stats.Conversions)
			if n.Stats.Rate != nil {
				rate = fmt.Sprintf("%.1f%%", *n.Stats.Rate*100)
			}
		}
		fmt.Fprintf(&sb, "| %s | %s | %s, %s | %.2f | %s | %s | %s | %s |\n",
			stepName(n), n.Kind,
			strconv.FormatFloat(n.Position.X, 'f', -1, 64), strconv.FormatFloat(n.Position.Y, 'f', -1, 64),
			scale(n.Scale), color, dash(views), dash(conv), dash(rate))
	}

	if edges > 0 {
		sb.WriteString("\n## Connections\n\n")
		for _, n := range doc.Nodes {
			for _, to := range n.OutgoingConnections {
				target, ok := byID[to]
				if !ok {
					fmt.Fprintf(&sb, "- %s → `%s` _(missing)_\n", escape(display(n)), to)
					continue
				}
				fmt.Fprintf(&sb, "- %s → %s\n", escape(display(n)), escape(display(target)))
			}
		}
	}

	var entries []string
	for _, n := range doc.Nodes {
		if incoming[n.ID] == 0 {
			entries = append(entries, escape(display(n)))
		}
	}
	if len(entries) > 0 {
		fmt.Fprintf(&sb, "\n**Entry points:** %s\n", strings.Join(entries, ", "))
	}

	var notes []string
	for _, n := range doc.Nodes {
		if n.Notes != "" {
			notes = append(notes, fmt.Sprintf("- **%s**: %s", escape(display(n)), escape(n.Notes)))
		}
	}
	if len(notes) > 0 {
		sb.WriteString("\n## Notes\n\n")
		sb.WriteString(strings.Join(notes, "\n"))
		sb.WriteString("\n")
	}

	return sb.String()
}

func display(n domain.NodeRecord) string {
	if n.Label != "" {
		return n.Label
	}
	if n.DisplayName != "" {
		return n.DisplayName
	}
	return n.Kind.DefaultName()
}

func stepName(n domain.NodeRecord) string {
	tag := n.IconTag
	if tag == "" {
		tag = icons.Infer(n.Kind, n.ID, n.DisplayName)
	}
	return fmt.Sprintf("%s %s (`%s`)", icons.Resolve(tag).Symbol, escape(display(n)), n.ID)
}

func scale(s float64) float64 {
	if s == 0 {
		return domain.DefaultScale
	}
	return s
}

func number(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// escape keeps user text from breaking table cells or lines.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
