package domain

// Document is the portable, handle-free representation of a funnel.
// It is the shape used for history snapshots, JSON/YAML export and persistence.
type Document struct {
	// ID is assigned by the persistence collaborator; empty for unsaved funnels.
	ID    string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string       `json:"name" yaml:"name"`
	Nodes []NodeRecord `json:"nodes" yaml:"nodes" validate:"dive"`
}

// NodeRecord is the portable form of a Step.
type NodeRecord struct {
	ID                  string   `json:"id" yaml:"id" validate:"required"`
	Kind                Kind     `json:"kind" yaml:"kind" validate:"required,oneof=social web-page marketing-action conversion-event"`
	DisplayName         string   `json:"displayName" yaml:"displayName"`
	Position            Point    `json:"position" yaml:"position"`
	Scale               float64  `json:"scale" yaml:"scale" validate:"gte=0"`
	IconTag             string   `json:"iconTag" yaml:"iconTag"`
	OutgoingConnections []string `json:"outgoingConnections" yaml:"outgoingConnections" validate:"unique,dive,required"`
	Color               Color    `json:"color,omitempty" yaml:"color,omitempty" validate:"omitempty,oneof=default blue green purple orange red pink yellow gray"`
	Label               string   `json:"label,omitempty" yaml:"label,omitempty"`
	Notes               string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Stats               *Stats   `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{ID: d.ID, Name: d.Name, Nodes: make([]NodeRecord, len(d.Nodes))}
	for i, n := range d.Nodes {
		n.OutgoingConnections = append([]string{}, n.OutgoingConnections...)
		n.Stats = n.Stats.Clone()
		out.Nodes[i] = n
	}
	return out
}

// Node returns the record with the given id.
func (d Document) Node(id string) (NodeRecord, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeRecord{}, false
}
