package forest

import (
	"errors"
	"math"
)

var ErrFlowNotComputed = errors.New("forest: Flow must be called before Governors")

// Governors distributes flow mass over governor relations, top-down. Each
// root slot starts out governing itself with weight exp(flow). A rule takes
// the share exp(inside(rule) - inside(parent)) of its parent slot's
// distribution; the child sharing the parent's lexical head inherits that
// share unchanged, while the other child is governed by the parent's head
// with the rule's flow mass.
//
// Calling Governors before Flow on a forest with rules returns
// ErrFlowNotComputed and leaves ExpectedGovernors nil.
func (h *Headed) Governors() error {
	if h.FlowScores == nil {
		if len(h.Rules) > 0 {
			return ErrFlowNotComputed
		}
		h.FlowScores = newScoreTable(h.Heads)
	}
	h.ExpectedGovernors = make([][]Distribution, len(h.Heads))
	for i, slots := range h.Heads {
		h.ExpectedGovernors[i] = make([]Distribution, len(slots))
		for j := range slots {
			h.ExpectedGovernors[i][j] = make(Distribution)
		}
	}
	for _, n := range h.Roots() {
		for j, flow := range h.FlowScores[n] {
			if flow.Valid {
				h.ExpectedGovernors[n][j].Add(RootRelation(n, j), flow.Prob())
			}
		}
	}

	for r := len(h.Rules) - 1; r >= 0; r-- {
		rule := &h.Rules[r]
		rule.Governors = nil
		parentInside := h.InsideScores[rule.LHS][rule.LHSHead]
		if !rule.Inside.Valid || !parentInside.Valid {
			continue
		}
		frac := math.Exp(rule.Inside.Log - parentInside.Log)
		rule.Governors = h.ExpectedGovernors[rule.LHS][rule.LHSHead].Scale(frac)

		h.passDown(rule, rule.RHS1, rule.RHS1Head)
		if rule.Binary() {
			h.passDown(rule, rule.RHS2, rule.RHS2Head)
		}
	}
	return nil
}

func (h *Headed) passDown(rule *HeadedRule, child, slot int) {
	target := h.ExpectedGovernors[child][slot]
	if h.Heads[child][slot] == h.Heads[rule.LHS][rule.LHSHead] {
		target.Merge(rule.Governors)
		return
	}
	if rule.Flow.Valid {
		target.Add(Relation{child, slot, rule.LHS, rule.LHSHead}, rule.Flow.Prob())
	}
}
