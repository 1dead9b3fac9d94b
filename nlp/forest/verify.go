package forest

import (
	"errors"
	"fmt"

	"egov/util"
)

const (
	ROOT_MASS        = "root mass"
	PROPAGATION_MASS = "propagation mass"
	FLOW_CONSISTENCY = "flow consistency"
)

// PropertyFailure is a computed value that breaks one of the mass or flow
// properties every governed forest satisfies
type PropertyFailure struct {
	Property string
	Node     int
	Slot     int
	Rule     int
	Got      float64
	Expected float64
}

func (p PropertyFailure) Class() string {
	return p.Property
}

func (p PropertyFailure) String() string {
	switch p.Property {
	case ROOT_MASS:
		return fmt.Sprintf("%s: got %v, expected %v", p.Property, p.Got, p.Expected)
	case FLOW_CONSISTENCY:
		return fmt.Sprintf("%s: rule %d flow %v exceeds parent flow %v", p.Property, p.Rule, p.Got, p.Expected)
	}
	return fmt.Sprintf("%s: slot (%d,%d) got %v, expected %v", p.Property, p.Node, p.Slot, p.Got, p.Expected)
}

// NumChecks is the number of property checks Verify performs
func (h *Headed) NumChecks() int {
	return 1 + h.NumSlots() + len(h.Rules)
}

// Verify checks, within eps, that root slots carry total flow 1, that each
// slot's governor weights sum to its flow, and that no rule carries more
// flow than its parent slot. Governors must have run.
func (h *Headed) Verify(eps float64) []PropertyFailure {
	var retval []PropertyFailure
	if mass := h.RootMass(); !util.AlmostEqual(mass, 1, eps) {
		retval = append(retval, PropertyFailure{Property: ROOT_MASS, Node: None, Slot: None, Rule: None, Got: mass, Expected: 1})
	}
	for n, slots := range h.ExpectedGovernors {
		for j, dist := range slots {
			total, flow := dist.Total(), h.FlowScores[n][j].Prob()
			if !util.AlmostEqual(total, flow, eps) {
				retval = append(retval, PropertyFailure{PROPAGATION_MASS, n, j, None, total, flow})
			}
		}
	}
	for i, rule := range h.Rules {
		if !rule.Flow.Valid {
			continue
		}
		parent := h.FlowScores[rule.LHS][rule.LHSHead].Prob()
		if rule.Flow.Prob() > parent+eps {
			retval = append(retval, PropertyFailure{FLOW_CONSISTENCY, rule.LHS, rule.LHSHead, i, rule.Flow.Prob(), parent})
		}
	}
	return retval
}

var ErrPropertyFailed = errors.New("forest: expected governors break mass or flow properties")
