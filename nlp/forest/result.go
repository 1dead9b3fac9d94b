package forest

import (
	"egov/nlp/types"
)

// Governor is one candidate governor of a leaf, resolved to labels and text
type Governor struct {
	Relation
	GovernedLabel string
	// GovernorLabel and GovernorText are types.START_SYMBOL at the root
	GovernorLabel string
	GovernorText  string
	// span of the governing head word, (-1,-1) at the root
	HeadStart, HeadEnd int
	Weight             float64
}

type LeafGovernors struct {
	Node       int
	Start, End int
	Label      string
	Text       string
	Governors  []Governor
}

// LeafGovernors reads the expected governor distribution of every leaf.
// Leaves have a single head slot, themselves. Governors must have run.
func (h *Headed) LeafGovernors(labels *types.LabelTable) []LeafGovernors {
	leaves := h.Leaves()
	retval := make([]LeafGovernors, 0, len(leaves))
	for _, n := range leaves {
		node := h.Nodes[n]
		leaf := LeafGovernors{
			Node:  n,
			Start: node.Start,
			End:   node.End,
			Label: labels.MustName(node.Label),
			Text:  h.Text(node.Start, node.End),
		}
		if h.ExpectedGovernors != nil && len(h.ExpectedGovernors[n]) > 0 {
			entries := h.ExpectedGovernors[n][0].Entries()
			leaf.Governors = make([]Governor, len(entries))
			for i, entry := range entries {
				leaf.Governors[i] = h.resolve(entry, labels)
			}
		}
		retval = append(retval, leaf)
	}
	return retval
}

func (h *Headed) resolve(entry WeightedRelation, labels *types.LabelTable) Governor {
	g := Governor{
		Relation:      entry.Relation,
		GovernedLabel: labels.MustName(h.Nodes[entry.U].Label),
		GovernorLabel: types.START_SYMBOL,
		GovernorText:  types.START_SYMBOL,
		HeadStart:     -1,
		HeadEnd:       -1,
		Weight:        entry.Weight,
	}
	if entry.IsRoot() {
		return g
	}
	head := h.Nodes[h.Heads[entry.Gov][entry.GovHead]]
	g.GovernorLabel = labels.MustName(h.Nodes[entry.Gov].Label)
	g.HeadStart, g.HeadEnd = head.Start, head.End
	g.GovernorText = h.Text(head.Start, head.End)
	return g
}

// Run takes f through all four stages. On error the returned forest holds
// whatever the completed stages produced.
func Run(f *Forest, labels *types.LabelTable, headRules *types.HeadRules) (*Headed, error) {
	h, err := f.Headed(labels, headRules)
	if err != nil {
		return nil, err
	}
	h.Inside()
	if err := h.Flow(); err != nil {
		return h, err
	}
	if err := h.Governors(); err != nil {
		return h, err
	}
	return h, nil
}

// UngovernedLeaves lists the leaves of f with no governors, for sentences
// whose stages failed
func (f *Forest) UngovernedLeaves(labels *types.LabelTable) []LeafGovernors {
	h := &Headed{Sentence: f.Sentence}
	return h.LeafGovernors(labels)
}
