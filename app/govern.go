package app

import (
	"io"
	"log"
	"os"

	"egov/nlp/format/governor"
	"egov/nlp/format/tcrf"
	"egov/nlp/types"
	"egov/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

type GovernStats struct {
	Sentences, Rejected, Failed, Warnings int
}

func GovernConfigOut() {
	log.Println("Configuration")
	log.Printf("Sort Policy:\t\t%s", sortPolicyStr)
	log.Printf("Output Format:\t%s", outFormat)
	log.Printf("Debug Output:\t\t%v", debugOut)
	log.Printf("Limit:\t\t\t%d", limit)
	log.Println()
	GrammarConfigOut()
	log.Println()
	log.Println("Data")
	if len(outFile) > 0 {
		log.Printf("Out File:\t\t%s", outFile)
	} else {
		log.Printf("Out File:\t\t%s", "(stdout)")
	}
}

// GovernStream writes the expected governors of every forest read from
// reader, up to limit forests if limit > 0. Sentences whose stages fail are
// written with no governors; only read errors stop the stream.
func GovernStream(reader *tcrf.Reader, writer governor.Writer, labels *types.LabelTable, rules *types.HeadRules, policy SortPolicy, limit int) (*GovernStats, error) {
	stats := &GovernStats{}
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
		h, violations, err := Process(f, labels, rules, policy)
		for _, v := range violations {
			log.Printf("Warning: sentence %d: %v", sent, v)
		}
		stats.Warnings += len(violations)
		if err != nil {
			if err == ErrRejected {
				stats.Rejected++
				sentencesTotal.WithLabelValues(STATUS_REJECTED).Inc()
			} else {
				stats.Failed++
				sentencesTotal.WithLabelValues(STATUS_FAILED).Inc()
			}
			log.Printf("Error: sentence %d: %v", sent, err)
			if err := writer.Write(sent, f.UngovernedLeaves(labels)); err != nil {
				return stats, err
			}
			continue
		}
		sentencesTotal.WithLabelValues(STATUS_OK).Inc()
		if err := writer.Write(sent, h.LeafGovernors(labels)); err != nil {
			return stats, err
		}
	}
	return stats, writer.Flush()
}

func Govern(cmd *commander.Command, args []string) error {
	SetupRunConf(cmd)
	REQUIRED_FLAGS := LocateGrammar([]string{"in"})
	VerifyFlags(cmd, REQUIRED_FLAGS)

	policy, err := ParseSortPolicy(sortPolicyStr)
	if err != nil {
		log.Fatalln(err)
	}
	GovernConfigOut()
	if len(metricsAddr) > 0 {
		ServeMetrics(metricsAddr)
	}
	log.Println()
	labels, rules := LoadGrammar()

	in := OpenInput()
	defer in.Close()
	var out io.Writer = os.Stdout
	if len(outFile) > 0 {
		file, err := os.Create(outFile)
		if err != nil {
			log.Fatalln("Failed creating output file", outFile, err)
		}
		defer file.Close()
		out = file
	}
	writer, err := governor.NewWriter(outFormat, out, RunID, debugOut)
	if err != nil {
		log.Fatalln(err)
	}

	log.Println()
	log.Println("Estimating expected governors")
	stats, err := GovernStream(tcrf.NewReader(in), writer, labels, rules, policy, limit)
	if err != nil {
		log.Println("Failed reading forest", stats.Sentences, "from", input)
		log.Fatalln(err)
	}
	log.Println("Processed", stats.Sentences, "sentences:", stats.Rejected, "rejected,", stats.Failed, "failed,", stats.Warnings, "warnings")
	util.LogMemory()
	return nil
}

func GovernCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Govern,
		UsageLine: "govern <file options> [arguments]",
		Short:     "estimates expected governors of parse forests",
		Long: `
estimates the expected governor distribution of every basic unit in a stream of weighted parse forests

	$ ./egov govern -l <labels> -hr <head rules> -in <forests> [-out <file>] [-format text|json] [options]

`,
		Flag: *flag.NewFlagSet("govern", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&labelsFile, "l", DEFAULT_LABELS_FILE, "Grammar Labels (tcrf rule) File")
	cmd.Flag.StringVar(&headRulesFile, "hr", DEFAULT_HEADRULES_FILE, "Binary Head Rules File")
	cmd.Flag.StringVar(&input, "in", "", "Input Forests File")
	cmd.Flag.StringVar(&outFile, "out", "", "Optional - Output File (default stdout)")
	cmd.Flag.StringVar(&outFormat, "format", DEFAULT_OUT_FORMAT, "Output Format [text, json]")
	cmd.Flag.BoolVar(&debugOut, "debug", false, "Print leaf text in text output")
	cmd.Flag.StringVar(&sortPolicyStr, "sort", DEFAULT_SORT_POLICY, "Unsorted rules policy [warn, sort, reject]")
	cmd.Flag.StringVar(&headFallbackStr, "headfallback", DEFAULT_HEAD_FALLBACK, "Head child for binary rules missing from the head rules [none, left, right]")
	cmd.Flag.StringVar(&confFile, "conf", "", "Optional - YAML Run Configuration File")
	cmd.Flag.StringVar(&metricsAddr, "metrics", "", "Optional - Serve Prometheus metrics on address (e.g. :9090)")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit number of sentences")
	return cmd
}
