// Command mailparse inspects MIME messages and mbox files.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/modfin/mailparse"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	logLevel string
	maxDepth int
}

var flags globalFlags

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           mailparse.Name,
		Short:         "Inspect MIME messages and mbox files",
		Version:       mailparse.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "debug, info, warn or error")
	root.PersistentFlags().IntVar(&flags.maxDepth, "max-depth", mailparse.DefaultMaxDepth, "multipart nesting limit")

	root.AddCommand(
		newDumpCmd(),
		newHeadersCmd(),
		newBodyCmd(),
		newMboxCmd(),
		newMailboxesCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func logger(w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(flags.logLevel))); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func parseOptions(cmd *cobra.Command) []mailparse.Option {
	return []mailparse.Option{
		mailparse.WithLogger(logger(cmd.ErrOrStderr())),
		mailparse.WithMaxDepth(flags.maxDepth),
	}
}

// readInput reads a file argument, or stdin when there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

func parseInput(cmd *cobra.Command, args []string) (*mailparse.Part, error) {
	raw, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	return mailparse.Parse(raw, parseOptions(cmd)...)
}
