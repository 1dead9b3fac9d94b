package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"egov/nlp/forest"
	"egov/nlp/format/governor"
	"egov/nlp/format/tcrf"
	"egov/nlp/types"
	"egov/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/peterh/liner"
)

const EXPLORE_PROMPT = "egov> "

var EXPLORE_COMMANDS = []string{"next", "sent", "leaf", "slots", "rules", "mass", "help", "quit"}

const EXPLORE_HELP = `next      load the next sentence
sent N    load sentence N
leaf N    expected governors of the N-th leaf
slots N   head slots of node N with inside and flow
rules     headed rules with inside and flow
mass      root mass, violations and errors of the sentence
help      this message
quit      leave`

// Explorer answers inspection commands over a forest stream. Forests are
// read on demand and kept so earlier sentences can be revisited.
type Explorer struct {
	reader  *tcrf.Reader
	forests []*forest.Forest
	labels  *types.LabelTable
	rules   *types.HeadRules
	policy  SortPolicy
	out     io.Writer

	cur        int
	h          *forest.Headed
	violations []forest.Violation
	err        error
}

func NewExplorer(reader *tcrf.Reader, labels *types.LabelTable, rules *types.HeadRules, policy SortPolicy, out io.Writer) *Explorer {
	return &Explorer{reader: reader, labels: labels, rules: rules, policy: policy, out: out, cur: -1}
}

// Exec runs one command line; it returns true on quit
func (e *Explorer) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	arg := -1
	if len(fields) > 1 {
		value, err := strconv.Atoi(fields[1])
		if err != nil || value < 0 {
			fmt.Fprintf(e.out, "bad argument %q\n", fields[1])
			return false
		}
		arg = value
	}
	switch fields[0] {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(e.out, EXPLORE_HELP)
	case "next":
		e.sentence(e.cur + 1)
	case "sent":
		if arg < 0 {
			fmt.Fprintln(e.out, "usage: sent N")
			return false
		}
		e.sentence(arg)
	case "leaf", "slots", "rules", "mass":
		if e.cur < 0 {
			fmt.Fprintln(e.out, "no sentence loaded, use next or sent N")
			return false
		}
		switch fields[0] {
		case "leaf":
			e.leaf(arg)
		case "slots":
			e.slots(arg)
		case "rules":
			e.headedRules()
		case "mass":
			e.mass()
		}
	default:
		fmt.Fprintf(e.out, "unknown command %q, try help\n", fields[0])
	}
	return false
}

// Complete lists the commands starting with line
func (e *Explorer) Complete(line string) []string {
	var retval []string
	for _, command := range EXPLORE_COMMANDS {
		if strings.HasPrefix(command, strings.TrimSpace(line)) {
			retval = append(retval, command)
		}
	}
	return retval
}

func (e *Explorer) sentence(n int) {
	for len(e.forests) <= n {
		f, err := e.reader.Read()
		if err == io.EOF {
			fmt.Fprintf(e.out, "no sentence %d, input has %d\n", n, len(e.forests))
			return
		}
		if err != nil {
			fmt.Fprintf(e.out, "failed reading sentence %d: %v\n", len(e.forests), err)
			return
		}
		e.forests = append(e.forests, f)
	}
	f := e.forests[n]
	e.cur = n
	e.h, e.violations, e.err = Process(f, e.labels, e.rules, e.policy)
	fmt.Fprintf(e.out, "sentence %d: %d tokens, %d nodes, %d rules\n", n, len(f.Tokens), len(f.Nodes), len(f.Rules))
	fmt.Fprintln(e.out, strings.Join(f.Tokens, " "))
	if len(e.violations) > 0 {
		fmt.Fprintf(e.out, "%d violations\n", len(e.violations))
	}
	if e.err != nil {
		fmt.Fprintln(e.out, "error:", e.err)
	}
}

func (e *Explorer) leaf(n int) {
	var leaves []forest.LeafGovernors
	if e.h != nil {
		leaves = e.h.LeafGovernors(e.labels)
	} else {
		leaves = e.forests[e.cur].UngovernedLeaves(e.labels)
	}
	if n < 0 || n >= len(leaves) {
		fmt.Fprintf(e.out, "usage: leaf N, 0 <= N < %d\n", len(leaves))
		return
	}
	leaf := leaves[n]
	fmt.Fprintf(e.out, "%s %d %d %s (node %d)\n", leaf.Text, leaf.Start, leaf.End, leaf.Label, leaf.Node)
	for _, g := range leaf.Governors {
		fmt.Fprintf(e.out, "  %s %s %s %s\t%v\n", governor.FormatWeight(g.Weight), g.GovernedLabel, g.GovernorLabel, g.GovernorText, g.Relation)
	}
}

func (e *Explorer) slots(n int) {
	if e.h == nil {
		fmt.Fprintln(e.out, "sentence has no headed forest")
		return
	}
	if n < 0 || n >= len(e.h.Nodes) {
		fmt.Fprintf(e.out, "usage: slots N, 0 <= N < %d\n", len(e.h.Nodes))
		return
	}
	node := e.h.Nodes[n]
	fmt.Fprintf(e.out, "%v %s\n", node, e.labels.MustName(node.Label))
	for j, head := range e.h.Heads[n] {
		leaf := e.h.Nodes[head]
		fmt.Fprintf(e.out, "  slot %d: head %d %q", j, head, e.h.Text(leaf.Start, leaf.End))
		if e.h.InsideScores != nil {
			fmt.Fprintf(e.out, " inside %v", e.h.InsideScores[n][j])
		}
		if e.h.FlowScores != nil {
			fmt.Fprintf(e.out, " flow %v", e.h.FlowScores[n][j])
		}
		if e.h.ExpectedGovernors != nil {
			fmt.Fprintf(e.out, " governors %d", len(e.h.ExpectedGovernors[n][j]))
		}
		fmt.Fprintln(e.out)
	}
}

func (e *Explorer) headedRules() {
	if e.h == nil {
		fmt.Fprintln(e.out, "sentence has no headed forest")
		return
	}
	for i, rule := range e.h.Rules {
		fmt.Fprintf(e.out, "%d: %v heads (%d %d %d) inside %v flow %v\n",
			i, rule.Rule, rule.LHSHead, rule.RHS1Head, rule.RHS2Head, rule.Inside, rule.Flow)
	}
}

func (e *Explorer) mass() {
	for _, v := range e.violations {
		fmt.Fprintln(e.out, "violation:", v)
	}
	if e.err != nil {
		fmt.Fprintln(e.out, "error:", e.err)
	}
	if e.h == nil {
		return
	}
	fmt.Fprintf(e.out, "root mass %v over %d root nodes, %d head slots\n", e.h.RootMass(), len(e.h.Roots()), e.h.NumSlots())
	if e.h.InsideScores == nil {
		return
	}
	var insides []float64
	for _, n := range e.h.Roots() {
		for _, inside := range e.h.InsideScores[n] {
			if inside.Valid {
				insides = append(insides, inside.Log)
			}
		}
	}
	fmt.Fprintf(e.out, "log sentence probability %v\n", util.LogSum(insides))
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DEFAULT_HISTORY_FILE
	}
	return filepath.Join(home, DEFAULT_HISTORY_FILE)
}

func Explore(cmd *commander.Command, args []string) error {
	SetupRunConf(cmd)
	REQUIRED_FLAGS := LocateGrammar([]string{"in"})
	VerifyFlags(cmd, REQUIRED_FLAGS)

	policy, err := ParseSortPolicy(sortPolicyStr)
	if err != nil {
		log.Fatalln(err)
	}
	GrammarConfigOut()
	labels, rules := LoadGrammar()
	in := OpenInput()
	defer in.Close()

	explorer := NewExplorer(tcrf.NewReader(in), labels, rules, policy, os.Stdout)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(explorer.Complete)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("type help for commands")
	for {
		line, err := ln.Prompt(EXPLORE_PROMPT)
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			break
		}
		if err != nil {
			return err
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		ln.AppendHistory(line)
		if explorer.Exec(line) {
			break
		}
	}
	return nil
}

func ExploreCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Explore,
		UsageLine: "explore <file options> [arguments]",
		Short:     "interactively inspects head slots, scores and governors of forests",
		Long: `
interactive shell over a forest stream: load sentences and inspect head slots, inside and flow scores,
headed rules and expected governors

	$ ./egov explore -l <labels> -hr <head rules> -in <forests>

`,
		Flag: *flag.NewFlagSet("explore", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&labelsFile, "l", DEFAULT_LABELS_FILE, "Grammar Labels (tcrf rule) File")
	cmd.Flag.StringVar(&headRulesFile, "hr", DEFAULT_HEADRULES_FILE, "Binary Head Rules File")
	cmd.Flag.StringVar(&input, "in", "", "Input Forests File")
	cmd.Flag.StringVar(&sortPolicyStr, "sort", DEFAULT_SORT_POLICY, "Unsorted rules policy [warn, sort, reject]")
	cmd.Flag.StringVar(&headFallbackStr, "headfallback", DEFAULT_HEAD_FALLBACK, "Head child for binary rules missing from the head rules [none, left, right]")
	cmd.Flag.StringVar(&confFile, "conf", "", "Optional - YAML Run Configuration File")
	return cmd
}
