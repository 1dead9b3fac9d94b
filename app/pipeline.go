package app

import (
	"errors"
	"fmt"
	"time"

	"egov/nlp/forest"
	"egov/nlp/types"
)

// SortPolicy decides what happens to forests whose rules are not bottom-up
type SortPolicy int

const (
	// SORT_WARN logs the violation and runs the stages on the forest as is
	SORT_WARN SortPolicy = iota
	// SORT_SORT reorders the rules topologically first
	SORT_SORT
	// SORT_REJECT skips the sentence
	SORT_REJECT
)

var sortPolicyNames = []string{"warn", "sort", "reject"}

var ErrRejected = errors.New("rules are not in bottom-up order")

func (p SortPolicy) String() string {
	return sortPolicyNames[p]
}

func ParseSortPolicy(value string) (SortPolicy, error) {
	for i, name := range sortPolicyNames {
		if value == name {
			return SortPolicy(i), nil
		}
	}
	return SORT_WARN, fmt.Errorf("unknown sort policy %q (expected one of %v)", value, sortPolicyNames)
}

// Process checks f, applies the sort policy and runs the four stages on it,
// timing each. Violations are returned even when err is not nil.
func Process(f *forest.Forest, labels *types.LabelTable, rules *types.HeadRules, policy SortPolicy) (*forest.Headed, []forest.Violation, error) {
	if err := f.Check(); err != nil {
		return nil, nil, err
	}
	forestRules.Observe(float64(len(f.Rules)))
	violations := f.Violations()
	countViolations(violations)
	if outOfOrder(violations) {
		switch policy {
		case SORT_REJECT:
			return nil, violations, ErrRejected
		case SORT_SORT:
			start := time.Now()
			if err := f.TopoSort(); err != nil {
				return nil, violations, err
			}
			observeStage(STAGE_SORT, start)
		}
	}

	start := time.Now()
	h, err := f.Headed(labels, rules)
	if err != nil {
		return nil, violations, err
	}
	observeStage(STAGE_HEADED, start)
	headSlots.Observe(float64(h.NumSlots()))

	start = time.Now()
	h.Inside()
	observeStage(STAGE_INSIDE, start)

	start = time.Now()
	if err := h.Flow(); err != nil {
		return h, violations, err
	}
	observeStage(STAGE_FLOW, start)

	start = time.Now()
	if err := h.Governors(); err != nil {
		return h, violations, err
	}
	observeStage(STAGE_GOVERNORS, start)
	return h, violations, nil
}

func outOfOrder(violations []forest.Violation) bool {
	for _, v := range violations {
		if v.Kind == forest.RULE_ORDER {
			return true
		}
	}
	return false
}
