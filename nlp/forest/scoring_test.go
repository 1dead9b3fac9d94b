package forest

import (
	"math"
	"reflect"
	"testing"

	"egov/nlp/types"
)

func TestTheDogRan(t *testing.T) {
	h := run(t, theDogRan(), theDogRanHeads)
	leaves := h.LeafGovernors(testLabels(t))
	if len(leaves) != 3 {
		t.Fatalf("Expected 3 leaves, got %d", len(leaves))
	}
	expected := []struct {
		text, governedLabel, governorLabel, governorText string
		rel                                              Relation
	}{
		{"the", "DT", "NP", "dog", Relation{0, 0, 3, 0}},
		{"dog", "NP", "S", "ran", Relation{3, 0, 4, 0}},
		{"ran", "ROOT", types.START_SYMBOL, types.START_SYMBOL, RootRelation(5, 0)},
	}
	for i, leaf := range leaves {
		e := expected[i]
		if leaf.Text != e.text {
			t.Errorf("Leaf %d: expected %s, got %s", i, e.text, leaf.Text)
		}
		if len(leaf.Governors) != 1 {
			t.Errorf("Leaf %s: expected a single governor, got %v", leaf.Text, leaf.Governors)
			continue
		}
		g := leaf.Governors[0]
		if g.Relation != e.rel {
			t.Errorf("Leaf %s: expected relation %v, got %v", leaf.Text, e.rel, g.Relation)
		}
		if g.GovernedLabel != e.governedLabel || g.GovernorLabel != e.governorLabel || g.GovernorText != e.governorText {
			t.Errorf("Leaf %s: expected %s %s %s, got %s %s %s", leaf.Text,
				e.governedLabel, e.governorLabel, e.governorText,
				g.GovernedLabel, g.GovernorLabel, g.GovernorText)
		}
		checkAlmost(t, "weight of "+leaf.Text, g.Weight, 1)
	}
}

func TestUniqueDerivationWeights(t *testing.T) {
	f := theDogRan()
	// any weights: a single derivation always has posterior 1
	f.Rules[0].LogProb = math.Log(0.2)
	f.Rules[1].LogProb = math.Log(0.01)
	f.Rules[2].LogProb = math.Log(0.9)
	h := run(t, f, theDogRanHeads)
	for _, leaf := range h.LeafGovernors(testLabels(t)) {
		if len(leaf.Governors) != 1 {
			t.Fatalf("Leaf %s: expected one governor, got %d", leaf.Text, len(leaf.Governors))
		}
		checkAlmost(t, "weight of "+leaf.Text, leaf.Governors[0].Weight, 1)
	}
}

func TestInsideAmbiguity(t *testing.T) {
	p1, p2 := math.Log(0.3), math.Log(0.1)
	h := run(t, ambiguous(p1, p2), ambiguousHeads)

	// both children pairs have inside log(0.5)
	expected := math.Log(math.Exp(p1+math.Log(0.5)) + math.Exp(p2+math.Log(0.5)))
	if !h.InsideScores[5][0].Valid {
		t.Fatal("Inside score of Z not set")
	}
	checkAlmost(t, "inside of Z", h.InsideScores[5][0].Log, expected)
	checkAlmost(t, "inside of ROOT", h.InsideScores[6][0].Log, expected)
	checkAlmost(t, "inside of leaf", h.InsideScores[0][0].Log, 0)
}

func TestFlowAmbiguitySplit(t *testing.T) {
	p1, p2 := math.Log(0.3), math.Log(0.1)
	h := run(t, ambiguous(p1, p2), ambiguousHeads)

	w1 := math.Exp(p1) / (math.Exp(p1) + math.Exp(p2))
	w2 := math.Exp(p2) / (math.Exp(p1) + math.Exp(p2))
	checkAlmost(t, "flow of rule (a b) c", h.Rules[2].Flow.Prob(), w1)
	checkAlmost(t, "flow of rule a (b c)", h.Rules[3].Flow.Prob(), w2)
	checkAlmost(t, "flow of Y(a b)", h.FlowScores[3][0].Prob(), w1)
	checkAlmost(t, "flow of Y(b c)", h.FlowScores[4][0].Prob(), w2)
	for leaf := 0; leaf < 3; leaf++ {
		checkAlmost(t, "flow of leaf", h.FlowScores[leaf][0].Prob(), 1)
	}
}

func TestGovernorsAmbiguity(t *testing.T) {
	h := run(t, ambiguous(math.Log(0.3), math.Log(0.1)), ambiguousHeads)
	w1, w2 := 0.75, 0.25
	expected := []map[Relation]float64{
		{RootRelation(6, 0): 1},
		{{1, 0, 3, 0}: w1, {4, 0, 5, 0}: w2},
		{{2, 0, 5, 0}: w1, {2, 0, 4, 0}: w2},
	}
	for i, e := range expected {
		got := h.ExpectedGovernors[i][0]
		if len(got) != len(e) {
			t.Errorf("Leaf %d: expected %v, got %v", i, e, got)
			continue
		}
		for rel, weight := range e {
			checkAlmost(t, "weight of "+rel.String(), got[rel], weight)
		}
	}
	leaves := h.LeafGovernors(testLabels(t))
	if leaves[1].Governors[0].Weight < leaves[1].Governors[1].Weight {
		t.Error("Leaf governors not sorted by weight")
	}
	if leaves[1].Governors[1].GovernorText != "a" {
		t.Errorf("Expected b governed by a in a (b c), got %s", leaves[1].Governors[1].GovernorText)
	}
}

func checkMassProperties(t *testing.T, h *Headed) {
	t.Helper()
	checkAlmost(t, "root mass", h.RootMass(), 1)
	for n, slots := range h.ExpectedGovernors {
		for j, dist := range slots {
			checkAlmost(t, "governor mass of "+h.Nodes[n].String(), dist.Total(), h.FlowScores[n][j].Prob())
		}
	}
	for i, rule := range h.Rules {
		if !rule.Flow.Valid {
			continue
		}
		parent := h.FlowScores[rule.LHS][rule.LHSHead].Prob()
		if rule.Flow.Prob() > parent+EPSILON {
			t.Errorf("Rule %d: flow %v exceeds parent flow %v", i, rule.Flow.Prob(), parent)
		}
	}
}

func TestMassConservation(t *testing.T) {
	forests := []struct {
		name  string
		f     *Forest
		heads map[string]int
	}{
		{"unique", theDogRan(), theDogRanHeads},
		{"ambiguous", ambiguous(math.Log(0.3), math.Log(0.1)), ambiguousHeads},
		{"split heads", ambiguous(math.Log(0.6), math.Log(0.2)), splitHeads},
		{"combinations", combinations(), map[string]int{"Y^X^X": types.HEAD_LEFT, "W^X^X": types.HEAD_RIGHT, "S^V^X": types.HEAD_LEFT}},
	}
	for _, c := range forests {
		t.Run(c.name, func(t *testing.T) {
			checkMassProperties(t, run(t, c.f, c.heads))
		})
	}
}

func TestSplitHeadsRootSlots(t *testing.T) {
	h := run(t, ambiguous(math.Log(0.6), math.Log(0.2)), splitHeads)
	checkAlmost(t, "root slot a", h.FlowScores[6][0].Prob(), 0.75)
	checkAlmost(t, "root slot b", h.FlowScores[6][1].Prob(), 0.25)
	// b heads the sentence in a (b c)
	checkAlmost(t, "b at root", h.ExpectedGovernors[1][0][RootRelation(6, 1)], 0.25)
}

func TestExtremeLogProbabilities(t *testing.T) {
	// exp(-2000) underflows; the stabilized sum must not
	h := run(t, ambiguous(-2000, -2000-math.Ln2), ambiguousHeads)
	if math.IsInf(h.InsideScores[5][0].Log, 0) || math.IsNaN(h.InsideScores[5][0].Log) {
		t.Fatalf("Inside of Z is not finite: %v", h.InsideScores[5][0].Log)
	}
	checkAlmost(t, "rule flow", h.Rules[2].Flow.Prob(), 2.0/3.0)
	checkMassProperties(t, h)
}

func TestDeterminism(t *testing.T) {
	h := run(t, ambiguous(math.Log(0.6), math.Log(0.2)), splitHeads)
	snapshot := func() ([][]Score, [][]Score, [][]Distribution, []HeadedRule) {
		rules := make([]HeadedRule, len(h.Rules))
		copy(rules, h.Rules)
		return h.InsideScores, h.FlowScores, h.ExpectedGovernors, rules
	}
	inside1, flow1, gov1, rules1 := snapshot()
	h.Inside()
	if err := h.Flow(); err != nil {
		t.Fatal(err)
	}
	if err := h.Governors(); err != nil {
		t.Fatal(err)
	}
	inside2, flow2, gov2, rules2 := snapshot()
	if !reflect.DeepEqual(inside1, inside2) || !reflect.DeepEqual(flow1, flow2) {
		t.Error("Score tables differ between runs")
	}
	if !reflect.DeepEqual(gov1, gov2) || !reflect.DeepEqual(rules1, rules2) {
		t.Error("Governor tables differ between runs")
	}
}

func TestFlowBeforeInside(t *testing.T) {
	h, err := theDogRan().Headed(testLabels(t), testHeadRules(t, theDogRanHeads))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Flow(); err != ErrInsideNotComputed {
		t.Errorf("Expected ErrInsideNotComputed, got %v", err)
	}
	if h.FlowScores != nil {
		t.Error("Flow table should stay empty")
	}
	if err := h.Governors(); err != ErrFlowNotComputed {
		t.Errorf("Expected ErrFlowNotComputed, got %v", err)
	}
	if h.ExpectedGovernors != nil {
		t.Error("Governor table should stay empty")
	}
}

func TestNoDerivation(t *testing.T) {
	f := theDogRan()
	// drop the root rule: nothing spans the sentence as an upper node
	f.Rules = f.Rules[:2]
	_, err := Run(f, testLabels(t), testHeadRules(t, theDogRanHeads))
	if err != ErrNoDerivation {
		t.Errorf("Expected ErrNoDerivation, got %v", err)
	}
}

func TestEmptyForest(t *testing.T) {
	f := &Forest{Sentence: Sentence{Tokens: []string{"a"}, Nodes: []Node{leaf(0, X)}}}
	h, err := f.Headed(testLabels(t), testHeadRules(t, nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Governors(); err != nil {
		t.Errorf("Governors on a forest without rules: %v", err)
	}
	if err := h.Flow(); err != ErrNoDerivation {
		t.Errorf("Expected ErrNoDerivation, got %v", err)
	}
}

func TestScoreAdd(t *testing.T) {
	var s Score
	if s.Valid || s.Prob() != 0 {
		t.Error("Zero score should be unset")
	}
	s = s.Add(math.Log(0.25))
	s = s.Add(math.Log(0.25))
	checkAlmost(t, "sum", s.Prob(), 0.5)
	if s.String() == "_" {
		t.Error("Set score prints as unset")
	}
}
