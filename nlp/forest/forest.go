// Package forest holds packed parse forests and computes expected governors
// over them (Schmid and Rooth, "Parse Forest Computation of Expected
// Governors", ACL 2001).
//
// A forest is processed in four stages, each reading only the output of the
// one before it:
//
//	headed, err := plain.Headed(labels, headRules) // split nodes by lexical head
//	headed.Inside()                                // bottom-up derivation mass
//	err = headed.Flow()                            // top-down posterior mass
//	err = headed.Governors()                       // governor distributions
//
// Nodes are addressed by their index in the node list and head slots by
// (node, position in that node's head list); no stage keeps pointers into
// node storage.
package forest

import "fmt"

const (
	// None marks the missing second child of a unary rule
	None = -1
	// Root is the governor of a relation whose dependent heads the sentence
	Root = -1
)

type Node struct {
	Start, End int
	Label      int
	Upper      bool
	BasicUnit  bool
}

func (n Node) Width() int {
	return n.End - n.Start
}

// IsLeaf is true for the constituents the sentence is segmented into; a
// leaf is its own lexical head
func (n Node) IsLeaf() bool {
	return n.BasicUnit && !n.Upper
}

func (n Node) String() string {
	return fmt.Sprintf("<%d,%d>:%d upper=%v bu=%v", n.Start, n.End, n.Label, n.Upper, n.BasicUnit)
}

// Rule is a hyperedge from LHS to one or two children, weighted by the
// grammar log-probability of the expansion
type Rule struct {
	LHS, RHS1, RHS2 int
	LogProb         float64
}

func (r Rule) Binary() bool {
	return r.RHS2 != None
}

func (r Rule) Children() []int {
	if r.Binary() {
		return []int{r.RHS1, r.RHS2}
	}
	return []int{r.RHS1}
}

func (r Rule) String() string {
	if r.Binary() {
		return fmt.Sprintf("%d -> %d %d (%g)", r.LHS, r.RHS1, r.RHS2, r.LogProb)
	}
	return fmt.Sprintf("%d -> %d (%g)", r.LHS, r.RHS1, r.LogProb)
}

// Sentence is the part of a forest shared by the plain and headed forms
type Sentence struct {
	Tokens []string
	Nodes  []Node
}

func (s *Sentence) IsLeaf(n int) bool {
	return s.Nodes[n].IsLeaf()
}

// IsRoot is true for upper nodes spanning the whole sentence
func (s *Sentence) IsRoot(n int) bool {
	node := s.Nodes[n]
	return node.Upper && node.Start == 0 && node.End == len(s.Tokens)
}

func (s *Sentence) Leaves() []int {
	retval := make([]int, 0, len(s.Tokens))
	for i, node := range s.Nodes {
		if node.IsLeaf() {
			retval = append(retval, i)
		}
	}
	return retval
}

func (s *Sentence) Roots() []int {
	var retval []int
	for i := range s.Nodes {
		if s.IsRoot(i) {
			retval = append(retval, i)
		}
	}
	return retval
}

// Text joins the tokens of [start, end) the way the output formats print
// constituents, without separators
func (s *Sentence) Text(start, end int) string {
	var text string
	for i := start; i < end && i < len(s.Tokens); i++ {
		text += s.Tokens[i]
	}
	return text
}

func (s *Sentence) copySentence() Sentence {
	tokens := make([]string, len(s.Tokens))
	copy(tokens, s.Tokens)
	nodes := make([]Node, len(s.Nodes))
	copy(nodes, s.Nodes)
	return Sentence{tokens, nodes}
}

// Forest is one sentence's packed forest; rules are expected in bottom-up
// order (see Violations and TopoSort)
type Forest struct {
	Sentence
	Rules []Rule
}

func (f *Forest) Clear() {
	f.Tokens = f.Tokens[:0]
	f.Nodes = f.Nodes[:0]
	f.Rules = f.Rules[:0]
}

func (f *Forest) NumBasicUnits() int {
	return len(f.Leaves())
}

// Check reports structural errors that make the forest unusable: node
// handles out of range and spans outside the sentence
func (f *Forest) Check() error {
	numNodes := len(f.Nodes)
	for i, node := range f.Nodes {
		if node.Start < 0 || node.End < node.Start || node.End > len(f.Tokens) {
			return fmt.Errorf("node %d: span <%d,%d> outside sentence of %d tokens", i, node.Start, node.End, len(f.Tokens))
		}
		if node.Label < 0 {
			return fmt.Errorf("node %d: negative label %d", i, node.Label)
		}
	}
	for i, rule := range f.Rules {
		if rule.LHS < 0 || rule.LHS >= numNodes {
			return fmt.Errorf("rule %d: lhs %d out of range [0,%d)", i, rule.LHS, numNodes)
		}
		if rule.RHS1 < 0 || rule.RHS1 >= numNodes {
			return fmt.Errorf("rule %d: rhs1 %d out of range [0,%d)", i, rule.RHS1, numNodes)
		}
		if rule.Binary() && (rule.RHS2 < 0 || rule.RHS2 >= numNodes) {
			return fmt.Errorf("rule %d: rhs2 %d out of range [0,%d)", i, rule.RHS2, numNodes)
		}
	}
	return nil
}
