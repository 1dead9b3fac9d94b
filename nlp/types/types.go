package types

const (
	// START_SYMBOL stands in for the governor of the sentence root
	START_SYMBOL = "#START#"

	HEAD_RULE_SEPARATOR = "^"
)
