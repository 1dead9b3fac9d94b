package forest

import (
	"fmt"
	"sort"

	"egov/alg/graph"
)

type ViolationKind int

const (
	// NODE_ORDER: a node is narrower than its predecessor, or an upper node
	// precedes a non-upper node of the same width
	NODE_ORDER ViolationKind = iota
	// RULE_ORDER: a rule builds a node that an earlier rule already used as a child
	RULE_ORDER
	// POSITIVE_LOG_PROB: a rule weight above log(1)
	POSITIVE_LOG_PROB
	// SPAN_MISMATCH: a child span lies outside its parent's span
	SPAN_MISMATCH
)

var violationNames = []string{"nodes not sorted", "rules not sorted", "rule log probability greater than 0", "child span outside parent"}

func (k ViolationKind) String() string {
	return violationNames[k]
}

// Violation is a recoverable input problem; stages still run on a forest
// with violations but their scores may be wrong for RULE_ORDER
type Violation struct {
	Kind  ViolationKind
	Index int
}

func (v Violation) String() string {
	switch v.Kind {
	case NODE_ORDER:
		return fmt.Sprintf("%v (node %d)", v.Kind, v.Index)
	default:
		return fmt.Sprintf("%v (rule %d)", v.Kind, v.Index)
	}
}

// Violations lists every soft invariant broken by f. The rule order check
// is exact: a rule is out of order only if a previous rule consumed its
// parent. Check must pass first.
func (f *Forest) Violations() []Violation {
	var retval []Violation
	for i := 1; i < len(f.Nodes); i++ {
		prev, cur := f.Nodes[i-1], f.Nodes[i]
		if cur.Width() < prev.Width() || (cur.Width() == prev.Width() && prev.Upper && !cur.Upper) {
			retval = append(retval, Violation{NODE_ORDER, i})
		}
	}
	consumed := make([]bool, len(f.Nodes))
	for i, rule := range f.Rules {
		if consumed[rule.LHS] {
			retval = append(retval, Violation{RULE_ORDER, i})
		}
		parent := f.Nodes[rule.LHS]
		for _, child := range rule.Children() {
			consumed[child] = true
			node := f.Nodes[child]
			if node.Start < parent.Start || node.End > parent.End {
				retval = append(retval, Violation{SPAN_MISMATCH, i})
			}
		}
		if rule.LogProb > 0 {
			retval = append(retval, Violation{POSITIVE_LOG_PROB, i})
		}
	}
	return retval
}

func (f *Forest) RulesSorted() bool {
	for _, v := range f.Violations() {
		if v.Kind == RULE_ORDER {
			return false
		}
	}
	return true
}

// TopoSort reorders the rules bottom-up: every rule building a node comes
// before every rule using it. Node handles are unchanged and rules that were
// already in order keep their relative order. A cycle of rules is an error.
func (f *Forest) TopoSort() error {
	order, err := graph.TopologicalOrder(&hyperGraph{f})
	if err != nil {
		return err
	}
	ranks := graph.Ranks(order)
	sort.SliceStable(f.Rules, func(i, j int) bool {
		return ranks[f.Rules[i].LHS] < ranks[f.Rules[j].LHS]
	})
	return nil
}

// hyperGraph views a forest as a hypergraph: node handles are vertices and
// each rule is a hyperedge from its children to its parent
type hyperGraph struct {
	f *Forest
}

type ruleEdge struct {
	id   int
	rule Rule
}

var _ graph.HyperGraph = &hyperGraph{}

func (e ruleEdge) ID() int                  { return e.id }
func (e ruleEdge) Head() int                { return e.rule.LHS }
func (e ruleEdge) Tails() []int             { return e.rule.Children() }
func (e ruleEdge) Vertices() []int          { return append([]int{e.rule.LHS}, e.rule.Children()...) }
func (g *hyperGraph) NumberOfVertices() int { return len(g.f.Nodes) }
func (g *hyperGraph) NumberOfEdges() int    { return len(g.f.Rules) }

func (g *hyperGraph) GetVertices() []int {
	vertices := make([]int, len(g.f.Nodes))
	for i := range vertices {
		vertices[i] = i
	}
	return vertices
}

func (g *hyperGraph) GetEdges() []int {
	edges := make([]int, len(g.f.Rules))
	for i := range edges {
		edges[i] = i
	}
	return edges
}

func (g *hyperGraph) GetVertex(i int) graph.Vertex {
	return graph.BasicVertex(i)
}

func (g *hyperGraph) GetEdge(i int) graph.Edge {
	return ruleEdge{i, g.f.Rules[i]}
}

func (g *hyperGraph) GetHyperEdge(i int) graph.HyperEdge {
	return ruleEdge{i, g.f.Rules[i]}
}
