package forest

import (
	"math"
	"testing"

	"egov/nlp/types"
)

const EPSILON = 1e-9

var testLabelNames = []string{"DT", "NN", "VB", "NP", "S", "ROOT", "X", "Y", "Z", "W", "V"}

const (
	DT = iota
	NN
	VB
	NP
	S
	ROOT
	X
	Y
	Z
	W
	V
)

func testLabels(t *testing.T) *types.LabelTable {
	labels := types.NewLabelTable(len(testLabelNames))
	for i, name := range testLabelNames {
		if err := labels.Set(i, name); err != nil {
			t.Fatal(err)
		}
	}
	labels.Freeze()
	return labels
}

func testHeadRules(t *testing.T, rules map[string]int) *types.HeadRules {
	headRules := types.NewHeadRules(len(rules))
	for key, head := range rules {
		if err := headRules.Add(key, head); err != nil {
			t.Fatal(err)
		}
	}
	return headRules
}

func leaf(i, label int) Node {
	return Node{Start: i, End: i + 1, Label: label, BasicUnit: true}
}

// the dog ran: NP(the dog) headed by dog, S(NP ran) headed by ran
func theDogRan() *Forest {
	return &Forest{
		Sentence: Sentence{
			Tokens: []string{"the", "dog", "ran"},
			Nodes: []Node{
				leaf(0, DT),
				leaf(1, NN),
				leaf(2, VB),
				{Start: 0, End: 2, Label: NP},
				{Start: 0, End: 3, Label: S},
				{Start: 0, End: 3, Label: ROOT, Upper: true},
			},
		},
		Rules: []Rule{
			{3, 0, 1, 0},
			{4, 3, 2, 0},
			{5, 4, None, 0},
		},
	}
}

var theDogRanHeads = map[string]int{
	"NP^DT^NN": types.HEAD_RIGHT,
	"S^NP^VB":  types.HEAD_RIGHT,
}

// a b c with two bracketings of Z: (a b) c with weight p1 and a (b c) with
// weight p2; both are headed by a
func ambiguous(p1, p2 float64) *Forest {
	return &Forest{
		Sentence: Sentence{
			Tokens: []string{"a", "b", "c"},
			Nodes: []Node{
				leaf(0, X),
				leaf(1, X),
				leaf(2, X),
				{Start: 0, End: 2, Label: Y},
				{Start: 1, End: 3, Label: Y},
				{Start: 0, End: 3, Label: Z},
				{Start: 0, End: 3, Label: ROOT, Upper: true},
			},
		},
		Rules: []Rule{
			{3, 0, 1, math.Log(0.5)},
			{4, 1, 2, math.Log(0.5)},
			{5, 3, 2, p1},
			{5, 0, 4, p2},
			{6, 5, None, 0},
		},
	}
}

var ambiguousHeads = map[string]int{
	"Y^X^X": types.HEAD_LEFT,
	"Z^Y^X": types.HEAD_LEFT,
	"Z^X^Y": types.HEAD_LEFT,
}

// same bracketings, but a (b c) is headed by b, so Z and ROOT get two head
// slots each
var splitHeads = map[string]int{
	"Y^X^X": types.HEAD_LEFT,
	"Z^Y^X": types.HEAD_LEFT,
	"Z^X^Y": types.HEAD_RIGHT,
}

func run(t *testing.T, f *Forest, heads map[string]int) *Headed {
	h, err := Run(f, testLabels(t), testHeadRules(t, heads))
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func checkAlmost(t *testing.T, what string, got, expected float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-expected) > EPSILON {
		t.Errorf("%s: expected %v, got %v", what, expected, got)
	}
}
