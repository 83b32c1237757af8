package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cfr/internal/cli"
	"cfr/internal/cli/commands"
	"cfr/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "cfr",
		Short:         "CI failure reviewer",
		Long:          `Load a CI artifact archive, group its JUnit test cases by failure reason, attach screenshots and triage which test changes to revert.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, log)

	// Register all commands
	cmds.Register(rootCmd, &flags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
