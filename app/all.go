package app

import (
	"log"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/google/uuid"
)

var AppCommands []*commander.Command = []*commander.Command{
	GovernCmd(),
	CheckCmd(),
	ExploreCmd(),
}

func AllCommands(name string) *commander.Command {
	cmd := &commander.Command{
		UsageLine:   name + " <command> [options]",
		Short:       "expected governors over weighted parse forests",
		Subcommands: AppCommands,
		Flag:        *flag.NewFlagSet(name, flag.ExitOnError),
	}
	for _, app := range cmd.Subcommands {
		app.Run = NewAppWrapCommand(app.Run)
	}
	return cmd
}

// InitCommand tags the log of this run with a fresh run id
func InitCommand(cmd *commander.Command, args []string) {
	RunID = uuid.New().String()
	log.SetPrefix(RunID[:SHORT_RUN_ID_LENGTH] + " ")
	log.Println("Run", RunID, "command", cmd.Name())
}

func NewAppWrapCommand(f func(cmd *commander.Command, args []string) error) func(cmd *commander.Command, args []string) error {
	wrapped := func(cmd *commander.Command, args []string) error {
		InitCommand(cmd, args)
		return f(cmd, args)
	}
	return wrapped
}
