// Package tcrf reads and writes the forests and grammar label tables of the
// tree CRF parser
package tcrf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"egov/nlp/forest"
)

const (
	NODE_SEPARATOR   = ":"
	NUM_NODE_FIELDS  = 6
	UNARY_RULE_LEN   = 3
	BINARY_RULE_LEN  = 4
	LOG_PROB_FORMAT  = 'g'
	LOG_PROB_DIGITS  = -1
	BOOL_FIELD_TRUE  = "1"
	BOOL_FIELD_FALSE = "0"
)

var ErrMalformedRule = errors.New("unknown rule format")

func ParseInt(value string) (int, error) {
	i, err := strconv.ParseInt(value, 10, 0)
	return int(i), err
}

func ParseBool(value string) (bool, error) {
	i, err := ParseInt(value)
	if err != nil {
		return false, err
	}
	return i != 0, nil
}

func FormatBool(value bool) string {
	if value {
		return BOOL_FIELD_TRUE
	}
	return BOOL_FIELD_FALSE
}

// ParseNode parses "<index>: <start> <end> <label> <upper> <basic unit>";
// the index is positional and only checked for syntax
func ParseNode(line string) (forest.Node, error) {
	node := forest.Node{}
	record := strings.Fields(strings.Replace(line, NODE_SEPARATOR, " ", 1))
	if len(record) != NUM_NODE_FIELDS {
		return node, fmt.Errorf("expected %d node fields, got %d in %q", NUM_NODE_FIELDS, len(record), line)
	}
	if _, err := ParseInt(record[0]); err != nil {
		return node, fmt.Errorf("error parsing INDEX field (%s): %v", record[0], err)
	}
	ints := make([]int, 3)
	for i, name := range []string{"START", "END", "LABEL"} {
		value, err := ParseInt(record[i+1])
		if err != nil {
			return node, fmt.Errorf("error parsing %s field (%s): %v", name, record[i+1], err)
		}
		ints[i] = value
	}
	node.Start, node.End, node.Label = ints[0], ints[1], ints[2]
	upper, err := ParseBool(record[4])
	if err != nil {
		return node, fmt.Errorf("error parsing UPPER field (%s): %v", record[4], err)
	}
	node.Upper = upper
	basicUnit, err := ParseBool(record[5])
	if err != nil {
		return node, fmt.Errorf("error parsing BASIC UNIT field (%s): %v", record[5], err)
	}
	node.BasicUnit = basicUnit
	return node, nil
}

// ParseRule parses "<lhs> <rhs1> <log prob>" or "<lhs> <rhs1> <rhs2> <log prob>"
func ParseRule(line string) (forest.Rule, error) {
	rule := forest.Rule{RHS2: forest.None}
	record := strings.Fields(line)
	if len(record) != UNARY_RULE_LEN && len(record) != BINARY_RULE_LEN {
		return rule, fmt.Errorf("%w: %q", ErrMalformedRule, line)
	}
	handles := make([]int, len(record)-1)
	for i := range handles {
		value, err := ParseInt(record[i])
		if err != nil {
			return rule, fmt.Errorf("%w: error parsing node field (%s): %v", ErrMalformedRule, record[i], err)
		}
		handles[i] = value
	}
	rule.LHS, rule.RHS1 = handles[0], handles[1]
	if len(handles) == 3 {
		rule.RHS2 = handles[2]
	}
	logProb, err := strconv.ParseFloat(record[len(record)-1], 64)
	if err != nil {
		return rule, fmt.Errorf("%w: error parsing LOG PROB field (%s): %v", ErrMalformedRule, record[len(record)-1], err)
	}
	rule.LogProb = logProb
	return rule, nil
}

// Reader reads a stream of forests, one at a time
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{scanner: scanner}
}

// nextLine returns the next non blank line; io.EOF at the end of input
func (r *Reader) nextLine() (string, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if len(line) > 0 {
			return line, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *Reader) nextCount(what string) (int, error) {
	line, err := r.nextLine()
	if err != nil {
		return 0, err
	}
	count, err := ParseInt(line)
	if err != nil || count < 0 {
		return 0, fmt.Errorf("line %d: error parsing %s count (%s)", r.line, what, line)
	}
	return count, nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Read returns the next forest, or io.EOF when the stream is exhausted
func (r *Reader) Read() (*forest.Forest, error) {
	numWords, err := r.nextCount("word")
	if err != nil {
		return nil, err
	}
	f := &forest.Forest{}
	f.Tokens = make([]string, 0, numWords)
	for len(f.Tokens) < numWords {
		line, err := r.nextLine()
		if err != nil {
			return nil, unexpected(err)
		}
		words := strings.Fields(line)
		if len(f.Tokens)+len(words) > numWords {
			return nil, fmt.Errorf("line %d: expected %d words, got at least %d", r.line, numWords, len(f.Tokens)+len(words))
		}
		f.Tokens = append(f.Tokens, words...)
	}

	numNodes, err := r.nextCount("node")
	if err != nil {
		return nil, unexpected(err)
	}
	f.Nodes = make([]forest.Node, numNodes)
	for i := range f.Nodes {
		line, err := r.nextLine()
		if err != nil {
			return nil, unexpected(err)
		}
		if f.Nodes[i], err = ParseNode(line); err != nil {
			return nil, fmt.Errorf("line %d: %v", r.line, err)
		}
	}

	numRules, err := r.nextCount("rule")
	if err != nil {
		return nil, unexpected(err)
	}
	f.Rules = make([]forest.Rule, numRules)
	for i := range f.Rules {
		line, err := r.nextLine()
		if err != nil {
			return nil, unexpected(err)
		}
		if f.Rules[i], err = ParseRule(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
	}
	return f, nil
}

func Read(r io.Reader, limit int) ([]*forest.Forest, error) {
	var forests []*forest.Forest
	reader := NewReader(r)
	for limit <= 0 || len(forests) < limit {
		f, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading forest %d: %w", len(forests), err)
		}
		forests = append(forests, f)
	}
	return forests, nil
}

func ReadFile(filename string, limit int) ([]*forest.Forest, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file, limit)
}

func writeForest(w *bufio.Writer, f *forest.Forest) {
	fmt.Fprintln(w, len(f.Tokens))
	for _, token := range f.Tokens {
		fmt.Fprintln(w, token)
	}
	fmt.Fprintln(w, len(f.Nodes))
	for i, node := range f.Nodes {
		fmt.Fprintf(w, "%d%s %d %d %d %s %s\n", i, NODE_SEPARATOR, node.Start, node.End, node.Label,
			FormatBool(node.Upper), FormatBool(node.BasicUnit))
	}
	fmt.Fprintln(w, len(f.Rules))
	for _, rule := range f.Rules {
		fmt.Fprintf(w, "%d %d ", rule.LHS, rule.RHS1)
		if rule.Binary() {
			fmt.Fprintf(w, "%d ", rule.RHS2)
		}
		fmt.Fprintln(w, strconv.FormatFloat(rule.LogProb, LOG_PROB_FORMAT, LOG_PROB_DIGITS, 64))
	}
}

func Write(writer io.Writer, forests []*forest.Forest) error {
	w := bufio.NewWriter(writer)
	for _, f := range forests {
		writeForest(w, f)
	}
	return w.Flush()
}

func WriteFile(filename string, forests []*forest.Forest) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, forests)
}
