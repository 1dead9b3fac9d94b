package app

import (
	"log"
	"os"

	"egov/nlp/format/headrules"
	"egov/nlp/format/tcrf"
	"egov/nlp/types"
	"egov/util"

	"github.com/gonuts/commander"
)

const (
	DEFAULT_LABELS_FILE    = "tcrf_rule"
	DEFAULT_HEADRULES_FILE = "binary_headrules"
	DEFAULT_EPSILON        = 1e-6
	DEFAULT_HISTORY_FILE   = ".egov_history"
	DEFAULT_OUT_FORMAT     = "text"
	DEFAULT_SORT_POLICY    = "sort"
	DEFAULT_HEAD_FALLBACK  = "none"
	SHORT_RUN_ID_LENGTH    = 8
)

var (
	DEFAULT_CONF_DIRS = []string{".", "conf", "data"}

	// file names
	labelsFile    string
	headRulesFile string
	input         string
	outFile       string
	confFile      string

	// processing options
	outFormat       string
	debugOut        bool
	sortPolicyStr   string
	headFallbackStr string
	metricsAddr     string
	limit           int
	epsilon         float64

	// RunID tags log lines and JSON output of one invocation
	RunID string
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

func VerifyFlags(cmd *commander.Command, required []string) {
	for _, flag := range required {
		f := cmd.Flag.Lookup(flag)
		if f.Value.String() == "" {
			log.Printf("Required flag %s not set", f.Name)
			cmd.Usage()
			os.Exit(1)
		}
	}
}

// LocateGrammar resolves the label and head rule files, searching the
// default conf dirs, and returns the flags still required
func LocateGrammar(required []string) []string {
	if location, found := util.LocateFile(labelsFile, DEFAULT_CONF_DIRS); found {
		labelsFile = location
	} else {
		required = append(required, "l")
	}
	if location, found := util.LocateFile(headRulesFile, DEFAULT_CONF_DIRS); found {
		headRulesFile = location
	} else {
		required = append(required, "hr")
	}
	return required
}

func GrammarConfigOut() {
	log.Printf("Labels File:\t\t%s", labelsFile)
	if !VerifyExists(labelsFile) {
		os.Exit(1)
	}
	if digest, err := util.MD5File(labelsFile); err == nil {
		log.Printf("Labels MD5:\t\t%s", digest)
	}
	log.Printf("Head Rules File:\t%s", headRulesFile)
	if !VerifyExists(headRulesFile) {
		os.Exit(1)
	}
	if digest, err := util.MD5File(headRulesFile); err == nil {
		log.Printf("Head Rules MD5:\t%s", digest)
	}
	log.Printf("Head Fallback:\t%s", headFallbackStr)
}

func LoadGrammar() (*types.LabelTable, *types.HeadRules) {
	fallback, err := types.ParseHeadFallback(headFallbackStr)
	if err != nil {
		log.Fatalln(err)
	}
	labels, err := tcrf.ReadLabelsFile(labelsFile)
	if err != nil {
		log.Println("Failed reading labels file:", labelsFile)
		log.Fatalln(err)
	}
	rules, err := headrules.ReadFile(headRulesFile, fallback)
	if err != nil {
		log.Println("Failed reading head rules file:", headRulesFile)
		log.Fatalln(err)
	}
	log.Println("Read", labels.Len(), "labels and", rules.Len(), "head rules")
	return labels, rules
}

func OpenInput() *os.File {
	log.Printf("Input File (forests):\t%s", input)
	if !VerifyExists(input) {
		os.Exit(1)
	}
	file, err := os.Open(input)
	if err != nil {
		log.Fatalln("Failed opening input file", input, err)
	}
	return file
}
