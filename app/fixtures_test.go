package app

import (
	"strings"
	"testing"

	"egov/nlp/format/headrules"
	"egov/nlp/format/tcrf"
	"egov/nlp/types"
)

const TEST_LABELS = `6 0 0
L 0 DT 0 0
L 1 NN 0 0
L 2 VB 0 0
L 3 NP 0 0
L 4 S 0 0
L 5 ROOT 0 0
`

const TEST_HEADRULES = `2
NP^DT^NN 1 10
S^NP^VB 1 10
`

// the dog ran, then a sentence with no derivation
const TEST_FORESTS = `3
the dog ran
6
0: 0 1 0 0 1
1: 1 2 1 0 1
2: 2 3 2 0 1
3: 0 2 3 0 0
4: 0 3 4 0 0
5: 0 3 5 1 0
3
3 0 1 -0.5
4 3 2 -0.25
5 4 0
1
x
1
0: 0 1 0 0 1
0
`

func testGrammar(t *testing.T) (*types.LabelTable, *types.HeadRules) {
	t.Helper()
	labels, err := tcrf.ReadLabels(strings.NewReader(TEST_LABELS))
	if err != nil {
		t.Fatal(err.Error())
	}
	rules, err := headrules.Read(strings.NewReader(TEST_HEADRULES), types.FallbackNone)
	if err != nil {
		t.Fatal(err.Error())
	}
	return labels, rules
}

func testReader() *tcrf.Reader {
	return tcrf.NewReader(strings.NewReader(TEST_FORESTS))
}
