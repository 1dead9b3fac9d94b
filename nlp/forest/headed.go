package forest

import (
	"fmt"

	"egov/nlp/types"
)

// HeadedRule is a rule specialized to one head slot at each endpoint. The
// score fields are filled in by Inside, Flow and Governors.
type HeadedRule struct {
	Rule
	LHSHead, RHS1Head, RHS2Head int

	Inside    Score
	Flow      Score
	Governors Distribution
}

// Headed is a forest whose nodes are split by lexical head. Heads[n] lists
// the leaf handles node n can be headed by; a head slot is (n, i) for
// i < len(Heads[n]).
type Headed struct {
	Sentence
	Rules []HeadedRule
	Heads [][]int

	InsideScores      [][]Score
	FlowScores        [][]Score
	ExpectedGovernors [][]Distribution
}

// Headed splits every node of f by the lexical heads it can take. Each
// combination of child head slots of a rule yields one headed rule; the
// parent gains a slot for the resulting head unless it already has one.
// Binary rules pick the head child from headRules by the label names of
// parent and children.
func (f *Forest) Headed(labels *types.LabelTable, headRules *types.HeadRules) (*Headed, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}
	h := &Headed{
		Sentence: f.copySentence(),
		Rules:    make([]HeadedRule, 0, len(f.Rules)),
		Heads:    make([][]int, len(f.Nodes)),
	}
	for i, node := range h.Nodes {
		if node.IsLeaf() {
			h.Heads[i] = []int{i}
		}
	}

	for r, rule := range f.Rules {
		if !rule.Binary() {
			for i, head := range h.Heads[rule.RHS1] {
				h.Rules = append(h.Rules, HeadedRule{
					Rule:     rule,
					LHSHead:  h.headSlot(rule.LHS, head),
					RHS1Head: i,
					RHS2Head: None,
				})
			}
			continue
		}
		headChild, err := f.headChild(rule, labels, headRules)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", r, err)
		}
		for i, head := range h.Heads[rule.RHS1] {
			for j, head2 := range h.Heads[rule.RHS2] {
				lexHead := head
				if headChild == types.HEAD_RIGHT {
					lexHead = head2
				}
				h.Rules = append(h.Rules, HeadedRule{
					Rule:     rule,
					LHSHead:  h.headSlot(rule.LHS, lexHead),
					RHS1Head: i,
					RHS2Head: j,
				})
			}
		}
	}
	return h, nil
}

func (f *Forest) headChild(rule Rule, labels *types.LabelTable, headRules *types.HeadRules) (int, error) {
	var names [3]string
	for i, n := range []int{rule.LHS, rule.RHS1, rule.RHS2} {
		name, exists := labels.Name(f.Nodes[n].Label)
		if !exists {
			return 0, fmt.Errorf("node %d: unknown label id %d", n, f.Nodes[n].Label)
		}
		names[i] = name
	}
	return headRules.Head(names[0], names[1], names[2])
}

// headSlot returns the slot of node n headed by leaf head, adding it if new
func (h *Headed) headSlot(n, head int) int {
	for i, existing := range h.Heads[n] {
		if existing == head {
			return i
		}
	}
	h.Heads[n] = append(h.Heads[n], head)
	return len(h.Heads[n]) - 1
}

// LexicalHead is the leaf handle heading slot (n, slot)
func (h *Headed) LexicalHead(n, slot int) int {
	return h.Heads[n][slot]
}

func (h *Headed) NumSlots() int {
	var total int
	for _, slots := range h.Heads {
		total += len(slots)
	}
	return total
}

// Clear drops all nodes, rules and score tables
func (h *Headed) Clear() {
	h.Tokens = h.Tokens[:0]
	h.Nodes = h.Nodes[:0]
	h.Rules = h.Rules[:0]
	h.Heads = h.Heads[:0]
	h.InsideScores = nil
	h.FlowScores = nil
	h.ExpectedGovernors = nil
}
