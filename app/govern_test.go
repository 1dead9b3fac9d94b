package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"egov/nlp/format/governor"
	"egov/nlp/format/tcrf"
)

const EXPECTED_GOVERNORS = `3
0 1 DT 1
DT NP dog 1
1 2 NN 1
NP S ran 1
2 3 VB 1
ROOT #START# #START# 1
1
0 1 DT 0
`

func TestGovernStream(t *testing.T) {
	labels, rules := testGrammar(t)
	var buf bytes.Buffer
	stats, err := GovernStream(testReader(), governor.NewTextWriter(&buf, false), labels, rules, SORT_SORT, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	if stats.Sentences != 2 || stats.Failed != 1 || stats.Rejected != 0 {
		t.Errorf("Wrong stats %+v", stats)
	}
	if buf.String() != EXPECTED_GOVERNORS {
		t.Errorf("Expected\n%s\ngot\n%s", EXPECTED_GOVERNORS, buf.String())
	}
}

func TestGovernStreamLimit(t *testing.T) {
	labels, rules := testGrammar(t)
	var buf bytes.Buffer
	stats, err := GovernStream(testReader(), governor.NewJSONWriter(&buf, "test-run"), labels, rules, SORT_SORT, 1)
	if err != nil {
		t.Fatal(err.Error())
	}
	if stats.Sentences != 1 {
		t.Errorf("Expected 1 sentence, got %d", stats.Sentences)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 JSON line, got %d", len(lines))
	}
	sentence := &governor.JSONSentence{}
	if err := json.Unmarshal([]byte(lines[0]), sentence); err != nil {
		t.Fatal(err.Error())
	}
	if sentence.Run != "test-run" || len(sentence.Leaves) != 3 {
		t.Errorf("Wrong sentence %+v", sentence)
	}
	if g := sentence.Leaves[1].Governors[0]; g.GovernorText != "ran" || g.Weight != 1 {
		t.Errorf("Wrong governor of dog %+v", g)
	}
}

func TestGovernStreamReadError(t *testing.T) {
	labels, rules := testGrammar(t)
	broken := strings.Replace(TEST_FORESTS, "5 4 0\n", "5 4\n", 1)
	var buf bytes.Buffer
	_, err := GovernStream(tcrf.NewReader(strings.NewReader(broken)), governor.NewTextWriter(&buf, false), labels, rules, SORT_SORT, 0)
	if !errors.Is(err, tcrf.ErrMalformedRule) {
		t.Errorf("Expected ErrMalformedRule, got %v", err)
	}
}
