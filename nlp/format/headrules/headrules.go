// Package headrules reads binary head-rule tables:
//
//	<n_rules>
//	<parent>^<child1>^<child2> <head 0|1> <count>    (n_rules times)
package headrules

import (
	"fmt"
	"io"
	"strconv"

	"egov/nlp/types"
	"egov/util/conf"
)

const NUM_RULE_FIELDS = 3

func ParseRule(record []string) (string, int, error) {
	if len(record) != NUM_RULE_FIELDS {
		return "", 0, fmt.Errorf("expected %d head rule fields, got %d", NUM_RULE_FIELDS, len(record))
	}
	head, err := strconv.Atoi(record[1])
	if err != nil {
		return "", 0, fmt.Errorf("error parsing HEAD field (%s): %v", record[1], err)
	}
	if _, err := strconv.Atoi(record[2]); err != nil {
		return "", 0, fmt.Errorf("error parsing COUNT field (%s): %v", record[2], err)
	}
	return record[0], head, nil
}

func read(c *conf.Conf, fallback types.HeadFallback) (*types.HeadRules, error) {
	fields := c.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("missing head rule count")
	}
	numRules, err := strconv.Atoi(fields[0])
	if err != nil || numRules < 0 {
		return nil, fmt.Errorf("error parsing head rule count (%s)", fields[0])
	}
	fields = fields[1:]
	if len(fields) < numRules*NUM_RULE_FIELDS {
		return nil, fmt.Errorf("expected %d head rules, found fields for %d", numRules, len(fields)/NUM_RULE_FIELDS)
	}
	rules := types.NewHeadRules(numRules)
	rules.Fallback = fallback
	for i := 0; i < numRules; i++ {
		key, head, err := ParseRule(fields[i*NUM_RULE_FIELDS : (i+1)*NUM_RULE_FIELDS])
		if err != nil {
			return nil, fmt.Errorf("head rule %d: %v", i, err)
		}
		if err := rules.Add(key, head); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

func Read(reader io.Reader, fallback types.HeadFallback) (*types.HeadRules, error) {
	c, err := conf.Read(reader)
	if err != nil {
		return nil, err
	}
	return read(c, fallback)
}

func ReadFile(filename string, fallback types.HeadFallback) (*types.HeadRules, error) {
	c, err := conf.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return read(c, fallback)
}
