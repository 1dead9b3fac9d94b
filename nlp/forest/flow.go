package forest

import "errors"

var (
	ErrInsideNotComputed = errors.New("forest: Inside must be called before Flow")
	ErrNoDerivation      = errors.New("forest: no derivation spans the whole sentence")
)

// Flow computes, for every head slot, the log posterior probability that the
// slot takes part in a derivation of the whole sentence. Root slots get their
// share of the total root mass; rules then pass the part of their parent's
// flow they account for down to their children, in reverse (top-down) order.
//
// Calling Flow before Inside on a forest with rules returns
// ErrInsideNotComputed and leaves FlowScores nil.
func (h *Headed) Flow() error {
	if h.InsideScores == nil {
		if len(h.Rules) > 0 {
			return ErrInsideNotComputed
		}
		h.Inside()
	}
	h.FlowScores = newScoreTable(h.Heads)
	for r := range h.Rules {
		h.Rules[r].Flow = Score{}
	}

	roots := h.Roots()
	var total Score
	for _, n := range roots {
		for _, inside := range h.InsideScores[n] {
			if inside.Valid {
				total = total.Add(inside.Log)
			}
		}
	}
	if !total.Valid {
		return ErrNoDerivation
	}
	for _, n := range roots {
		for j, inside := range h.InsideScores[n] {
			if inside.Valid {
				h.FlowScores[n][j] = LogScore(inside.Log - total.Log)
			}
		}
	}

	for r := len(h.Rules) - 1; r >= 0; r-- {
		rule := &h.Rules[r]
		parentInside := h.InsideScores[rule.LHS][rule.LHSHead]
		parentFlow := h.FlowScores[rule.LHS][rule.LHSHead]
		if !rule.Inside.Valid || !parentInside.Valid || !parentFlow.Valid {
			continue
		}
		rule.Flow = LogScore(rule.Inside.Log - parentInside.Log + parentFlow.Log)

		slot := &h.FlowScores[rule.RHS1][rule.RHS1Head]
		*slot = slot.Add(rule.Flow.Log)
		if rule.Binary() {
			slot = &h.FlowScores[rule.RHS2][rule.RHS2Head]
			*slot = slot.Add(rule.Flow.Log)
		}
	}
	return nil
}

// RootMass is the sum of exp(flow) over all root slots; 1 for any forest
// with a derivation
func (h *Headed) RootMass() float64 {
	var mass float64
	if h.FlowScores == nil {
		return mass
	}
	for _, n := range h.Roots() {
		for _, flow := range h.FlowScores[n] {
			mass += flow.Prob()
		}
	}
	return mass
}
