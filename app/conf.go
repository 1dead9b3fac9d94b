package app

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"egov/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"gopkg.in/yaml.v2"
)

// RunConf is a YAML run configuration. Its values fill the flags of a
// command that were not given on the command line.
type RunConf struct {
	Labels       string  `yaml:"labels"`
	HeadRules    string  `yaml:"head rules"`
	Input        string  `yaml:"input"`
	Output       string  `yaml:"output"`
	Format       string  `yaml:"format"`
	Debug        bool    `yaml:"debug"`
	Sort         string  `yaml:"sort"`
	HeadFallback string  `yaml:"head fallback"`
	Metrics      string  `yaml:"metrics"`
	Limit        int     `yaml:"limit"`
	Epsilon      float64 `yaml:"epsilon"`
}

// FlagValues maps flag names to the values set in c; zero values are unset
func (c *RunConf) FlagValues() map[string]string {
	values := make(map[string]string)
	set := func(name, value string) {
		if len(value) > 0 {
			values[name] = value
		}
	}
	set("l", c.Labels)
	set("hr", c.HeadRules)
	set("in", c.Input)
	set("out", c.Output)
	set("format", c.Format)
	set("sort", c.Sort)
	set("headfallback", c.HeadFallback)
	set("metrics", c.Metrics)
	if c.Debug {
		values["debug"] = "true"
	}
	if c.Limit != 0 {
		values["limit"] = strconv.Itoa(c.Limit)
	}
	if c.Epsilon != 0 {
		values["eps"] = strconv.FormatFloat(c.Epsilon, 'g', -1, 64)
	}
	return values
}

func LoadRunConf(data []byte) (*RunConf, error) {
	c := new(RunConf)
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, err
	}
	return c, nil
}

func LoadRunConfFile(filename string) (*RunConf, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return LoadRunConf(data)
}

// ApplyRunConf sets every flag of cmd named in c unless it was given on the
// command line. Values for flags cmd does not define are ignored.
func ApplyRunConf(cmd *commander.Command, c *RunConf) error {
	given := make(map[string]bool)
	cmd.Flag.Visit(func(f *flag.Flag) {
		given[f.Name] = true
	})
	values := c.FlagValues()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if given[name] || cmd.Flag.Lookup(name) == nil {
			continue
		}
		if err := cmd.Flag.Set(name, values[name]); err != nil {
			return fmt.Errorf("run configuration value %s: %v", name, err)
		}
	}
	return nil
}

// SetupRunConf loads the file given with -conf, if any, into cmd's flags
func SetupRunConf(cmd *commander.Command) {
	if len(confFile) == 0 {
		return
	}
	if location, found := util.LocateFile(confFile, DEFAULT_CONF_DIRS); found {
		confFile = location
	}
	log.Printf("Run Configuration:\t%s", confFile)
	c, err := LoadRunConfFile(confFile)
	if err != nil {
		log.Println("Failed reading run configuration file:", confFile)
		log.Fatalln(err)
	}
	if err := ApplyRunConf(cmd, c); err != nil {
		log.Fatalln(err)
	}
}
