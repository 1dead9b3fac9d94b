package types

import (
	"fmt"
	"strings"

	"egov/util"
)

// LabelTable maps grammar label ids to label names. It is loaded once and
// frozen; after Freeze it is safe to share across sentences.
type LabelTable struct {
	labels *util.EnumSet
}

func NewLabelTable(capacity int) *LabelTable {
	return &LabelTable{util.NewEnumSet(capacity)}
}

func (l *LabelTable) Set(id int, name string) error {
	if len(name) == 0 {
		return fmt.Errorf("empty label name for id %d", id)
	}
	return l.labels.Set(id, name)
}

func (l *LabelTable) Name(id int) (string, bool) {
	return l.labels.ValueOf(id)
}

func (l *LabelTable) ID(name string) (int, bool) {
	return l.labels.IndexOf(name)
}

// MustName is for output paths where ids were already validated by head
// propagation; unknown ids print as "?<id>"
func (l *LabelTable) MustName(id int) string {
	if name, ok := l.labels.ValueOf(id); ok {
		return name
	}
	return fmt.Sprintf("?%d", id)
}

func (l *LabelTable) Len() int {
	return l.labels.Len()
}

func (l *LabelTable) Freeze() {
	l.labels.Frozen = true
}

// HeadFallback decides the head child of a binary rule missing from the
// head-rule table
type HeadFallback int

const (
	// FallbackNone reports missing keys as configuration errors
	FallbackNone HeadFallback = iota
	FallbackLeft
	FallbackRight
)

var headFallbackNames = []string{"none", "left", "right"}

func (h HeadFallback) String() string {
	if int(h) < len(headFallbackNames) {
		return headFallbackNames[h]
	}
	return fmt.Sprintf("HeadFallback(%d)", int(h))
}

func ParseHeadFallback(value string) (HeadFallback, error) {
	for i, name := range headFallbackNames {
		if strings.EqualFold(value, name) {
			return HeadFallback(i), nil
		}
	}
	return FallbackNone, fmt.Errorf("unknown head fallback %q (expected none, left or right)", value)
}

const (
	HEAD_LEFT  = 0
	HEAD_RIGHT = 1
)

func HeadRuleKey(parent, child1, child2 string) string {
	return parent + HEAD_RULE_SEPARATOR + child1 + HEAD_RULE_SEPARATOR + child2
}

// UnknownHeadRuleError is returned for a binary rule whose label triple has
// no entry in the head-rule table
type UnknownHeadRuleError struct {
	Key string
}

func (e *UnknownHeadRuleError) Error() string {
	return fmt.Sprintf("no head rule for %s", e.Key)
}

// HeadRules maps "<parent>^<child1>^<child2>" to the index of the head child
type HeadRules struct {
	Rules    map[string]int
	Fallback HeadFallback
}

func NewHeadRules(capacity int) *HeadRules {
	return &HeadRules{Rules: make(map[string]int, capacity)}
}

func (h *HeadRules) Add(key string, head int) error {
	if head != HEAD_LEFT && head != HEAD_RIGHT {
		return fmt.Errorf("head rule %s: head must be %d or %d, got %d", key, HEAD_LEFT, HEAD_RIGHT, head)
	}
	if len(strings.Split(key, HEAD_RULE_SEPARATOR)) != 3 {
		return fmt.Errorf("head rule key %q is not of the form P%sC1%sC2", key, HEAD_RULE_SEPARATOR, HEAD_RULE_SEPARATOR)
	}
	h.Rules[key] = head
	return nil
}

func (h *HeadRules) Head(parent, child1, child2 string) (int, error) {
	key := HeadRuleKey(parent, child1, child2)
	if head, exists := h.Rules[key]; exists {
		return head, nil
	}
	switch h.Fallback {
	case FallbackLeft:
		return HEAD_LEFT, nil
	case FallbackRight:
		return HEAD_RIGHT, nil
	}
	return 0, &UnknownHeadRuleError{key}
}

func (h *HeadRules) Len() int {
	return len(h.Rules)
}
