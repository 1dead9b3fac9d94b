package app

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestExplorer(t *testing.T) {
	labels, rules := testGrammar(t)
	var out bytes.Buffer
	e := NewExplorer(testReader(), labels, rules, SORT_SORT, &out)

	var tests = []struct {
		line     string
		expected string
	}{
		{"mass", "no sentence loaded"},
		{"next", "sentence 0: 3 tokens, 6 nodes, 3 rules"},
		{"leaf 0", "DT NP dog"},
		{"leaf 2", "ROOT #START# #START#"},
		{"leaf 7", "usage: leaf N"},
		{"slots 4", `slot 0: head 2 "ran"`},
		{"rules", "2: "},
		{"mass", "root mass 1"},
		{"sent 5", "no sentence 5, input has 2"},
		{"sent 1", "error:"},
		{"leaf 0", "0 1 DT"},
		{"sent x", "bad argument"},
		{"dance", "unknown command"},
		{"help", "leaf N"},
	}
	for _, test := range tests {
		out.Reset()
		if e.Exec(test.line) {
			t.Errorf("%s: unexpected quit", test.line)
		}
		if !strings.Contains(out.String(), test.expected) {
			t.Errorf("%s: expected output containing %q, got %q", test.line, test.expected, out.String())
		}
	}
	if !e.Exec("quit") {
		t.Error("Expected quit")
	}
}

func TestExplorerComplete(t *testing.T) {
	e := NewExplorer(testReader(), nil, nil, SORT_SORT, &bytes.Buffer{})
	if completions := e.Complete("s"); !reflect.DeepEqual(completions, []string{"sent", "slots"}) {
		t.Errorf("Expected sent and slots, got %v", completions)
	}
	if completions := e.Complete("zz"); len(completions) != 0 {
		t.Errorf("Expected no completions, got %v", completions)
	}
}
