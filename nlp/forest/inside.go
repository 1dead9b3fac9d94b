package forest

// Inside computes, for every head slot, the log mass of all derivations
// rooted there. Leaves are certain (log 1). Rules are visited in stored
// bottom-up order; a rule whose children have no mass contributes nothing.
func (h *Headed) Inside() {
	h.InsideScores = newScoreTable(h.Heads)
	for i, node := range h.Nodes {
		if node.IsLeaf() {
			h.InsideScores[i][0] = LogScore(0)
		}
	}
	for r := range h.Rules {
		rule := &h.Rules[r]
		rule.Inside = Score{}
		child := h.InsideScores[rule.RHS1][rule.RHS1Head]
		if !child.Valid {
			continue
		}
		score := rule.LogProb + child.Log
		if rule.Binary() {
			child2 := h.InsideScores[rule.RHS2][rule.RHS2Head]
			if !child2.Valid {
				continue
			}
			score += child2.Log
		}
		rule.Inside = LogScore(score)
		slot := &h.InsideScores[rule.LHS][rule.LHSHead]
		*slot = slot.Add(score)
	}
}
