package app

import (
	"io"
	"log"

	"egov/eval"
	"egov/nlp/forest"
	"egov/nlp/format/tcrf"
	"egov/nlp/types"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

type CheckStats struct {
	eval.Total
	Sentences, Skipped int
}

func (c *CheckStats) Passed() int {
	return c.Exact
}

func (c *CheckStats) Failed() int {
	return c.Population - c.Exact
}

// VerifyResult runs the property checks of h as one evaluation result
func VerifyResult(h *forest.Headed, eps float64) *eval.Result {
	result := &eval.Result{Checked: h.NumChecks()}
	for _, failure := range h.Verify(eps) {
		result.Errors = append(result.Errors, failure)
	}
	return result
}

// CheckStream runs every forest of reader through the stages and verifies
// the mass and flow properties of the result within eps
func CheckStream(reader *tcrf.Reader, labels *types.LabelTable, rules *types.HeadRules, policy SortPolicy, eps float64, limit int) (*CheckStats, error) {
	stats := &CheckStats{}
	for limit <= 0 || stats.Sentences < limit {
		f, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, err
		}
		sent := stats.Sentences
		stats.Sentences++
		h, _, err := Process(f, labels, rules, policy)
		if err != nil {
			log.Printf("Sentence %d: skipped: %v", sent, err)
			stats.Skipped++
			continue
		}
		result := VerifyResult(h, eps)
		for _, failure := range result.Errors {
			log.Printf("Sentence %d: %v", sent, failure)
		}
		stats.Add(result)
	}
	return stats, nil
}

func Check(cmd *commander.Command, args []string) error {
	SetupRunConf(cmd)
	REQUIRED_FLAGS := LocateGrammar([]string{"in"})
	VerifyFlags(cmd, REQUIRED_FLAGS)

	policy, err := ParseSortPolicy(sortPolicyStr)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Configuration")
	log.Printf("Sort Policy:\t\t%s", sortPolicyStr)
	log.Printf("Epsilon:\t\t%v", epsilon)
	log.Println()
	GrammarConfigOut()
	log.Println()
	labels, rules := LoadGrammar()

	in := OpenInput()
	defer in.Close()
	stats, err := CheckStream(tcrf.NewReader(in), labels, rules, policy, epsilon, limit)
	if err != nil {
		log.Println("Failed reading forest", stats.Sentences, "from", input)
		log.Fatalln(err)
	}
	log.Println("Checked", stats.Sentences, "sentences:", stats.Passed(), "passed,", stats.Failed(), "failed,", stats.Skipped, "skipped")
	log.Printf("Checks passed:\t%d of %d (%.4f)", stats.Correct(), stats.Checked, stats.Accuracy())
	for property, count := range stats.Errors.ByType() {
		log.Printf("Failed %s:\t%d", property, count)
	}
	if stats.Failed() > 0 {
		return forest.ErrPropertyFailed
	}
	return nil
}

func CheckCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Check,
		UsageLine: "check <file options> [arguments]",
		Short:     "verifies mass and flow properties of expected governors",
		Long: `
runs the expected governor estimation and verifies, per sentence, that root flow sums to 1,
that governor weights sum to each slot's flow, and that no rule carries more flow than its parent

	$ ./egov check -l <labels> -hr <head rules> -in <forests> [-eps <tolerance>]

`,
		Flag: *flag.NewFlagSet("check", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&labelsFile, "l", DEFAULT_LABELS_FILE, "Grammar Labels (tcrf rule) File")
	cmd.Flag.StringVar(&headRulesFile, "hr", DEFAULT_HEADRULES_FILE, "Binary Head Rules File")
	cmd.Flag.StringVar(&input, "in", "", "Input Forests File")
	cmd.Flag.StringVar(&sortPolicyStr, "sort", DEFAULT_SORT_POLICY, "Unsorted rules policy [warn, sort, reject]")
	cmd.Flag.StringVar(&headFallbackStr, "headfallback", DEFAULT_HEAD_FALLBACK, "Head child for binary rules missing from the head rules [none, left, right]")
	cmd.Flag.StringVar(&confFile, "conf", "", "Optional - YAML Run Configuration File")
	cmd.Flag.Float64Var(&epsilon, "eps", DEFAULT_EPSILON, "Tolerance for property checks")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit number of sentences")
	return cmd
}
