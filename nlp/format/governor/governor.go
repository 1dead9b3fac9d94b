// Package governor writes expected governor distributions, either in the
// line layout of the tree CRF tools or as JSON lines
package governor

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"egov/nlp/forest"
)

const (
	FORMAT_TEXT = "text"
	FORMAT_JSON = "json"

	WEIGHT_FORMAT = 'g'
	// six significant digits, as C++ streams print doubles
	WEIGHT_DIGITS = 6
)

var FORMATS = []string{FORMAT_TEXT, FORMAT_JSON}

type Writer interface {
	// Write emits the leaves of sentence number sent
	Write(sent int, leaves []forest.LeafGovernors) error
	Flush() error
}

func FormatWeight(weight float64) string {
	return strconv.FormatFloat(weight, WEIGHT_FORMAT, WEIGHT_DIGITS, 64)
}

// TextWriter writes, per sentence, the leaf count and then per leaf a header
// "[text ]<start> <end> <label> <n>" followed by n lines
// "<governed label> <governor label> <governor text> <weight>"
type TextWriter struct {
	w *bufio.Writer
	// Debug prefixes leaf headers with the leaf text
	Debug bool
}

func NewTextWriter(w io.Writer, debug bool) *TextWriter {
	return &TextWriter{bufio.NewWriter(w), debug}
}

func (t *TextWriter) Write(sent int, leaves []forest.LeafGovernors) error {
	fmt.Fprintln(t.w, len(leaves))
	for _, leaf := range leaves {
		if t.Debug {
			fmt.Fprintf(t.w, "%s ", leaf.Text)
		}
		fmt.Fprintf(t.w, "%d %d %s %d\n", leaf.Start, leaf.End, leaf.Label, len(leaf.Governors))
		for _, g := range leaf.Governors {
			_, err := fmt.Fprintf(t.w, "%s %s %s %s\n", g.GovernedLabel, g.GovernorLabel, g.GovernorText, FormatWeight(g.Weight))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *TextWriter) Flush() error {
	return t.w.Flush()
}

type JSONGovernor struct {
	GovernedLabel string  `json:"governed"`
	GovernorLabel string  `json:"governor"`
	GovernorText  string  `json:"governor_text"`
	HeadStart     int     `json:"head_start"`
	HeadEnd       int     `json:"head_end"`
	Root          bool    `json:"root,omitempty"`
	Weight        float64 `json:"weight"`
}

type JSONLeaf struct {
	Node      int            `json:"node"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	Label     string         `json:"label"`
	Text      string         `json:"text"`
	Governors []JSONGovernor `json:"governors"`
}

type JSONSentence struct {
	Run      string     `json:"run,omitempty"`
	Sentence int        `json:"sentence"`
	Leaves   []JSONLeaf `json:"leaves"`
}

// JSONWriter writes one JSONSentence object per line
type JSONWriter struct {
	w     *bufio.Writer
	enc   *json.Encoder
	RunID string
}

func NewJSONWriter(w io.Writer, runID string) *JSONWriter {
	buffered := bufio.NewWriter(w)
	return &JSONWriter{buffered, json.NewEncoder(buffered), runID}
}

func ToJSON(runID string, sent int, leaves []forest.LeafGovernors) *JSONSentence {
	retval := &JSONSentence{Run: runID, Sentence: sent, Leaves: make([]JSONLeaf, len(leaves))}
	for i, leaf := range leaves {
		jsonLeaf := JSONLeaf{
			Node:      leaf.Node,
			Start:     leaf.Start,
			End:       leaf.End,
			Label:     leaf.Label,
			Text:      leaf.Text,
			Governors: make([]JSONGovernor, len(leaf.Governors)),
		}
		for j, g := range leaf.Governors {
			jsonLeaf.Governors[j] = JSONGovernor{
				GovernedLabel: g.GovernedLabel,
				GovernorLabel: g.GovernorLabel,
				GovernorText:  g.GovernorText,
				HeadStart:     g.HeadStart,
				HeadEnd:       g.HeadEnd,
				Root:          g.IsRoot(),
				Weight:        g.Weight,
			}
		}
		retval.Leaves[i] = jsonLeaf
	}
	return retval
}

func (j *JSONWriter) Write(sent int, leaves []forest.LeafGovernors) error {
	return j.enc.Encode(ToJSON(j.RunID, sent, leaves))
}

func (j *JSONWriter) Flush() error {
	return j.w.Flush()
}

func NewWriter(format string, w io.Writer, runID string, debug bool) (Writer, error) {
	switch format {
	case FORMAT_TEXT:
		return NewTextWriter(w, debug), nil
	case FORMAT_JSON:
		return NewJSONWriter(w, runID), nil
	}
	return nil, fmt.Errorf("unknown output format %q (expected one of %v)", format, FORMATS)
}
