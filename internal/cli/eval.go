package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dantswain/nushell/internal/commands"
	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/lang"
	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/value"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <source>",
		Short: "Evaluate a pipeline source string",
		Long: `Parse and evaluate a pipeline source string, printing the result.

Example:
  nush eval '[1 2 3 4] | reduce {|it, acc| $it + $acc}'
  nush eval --format json '[1 2 3] | reduce -n {|it, acc| $acc + $it.item}'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return evalSource(opts, args[0], cmd)
		},
	}

	return cmd
}

func evalSource(opts *EvalOptions, source string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	state := commands.NewEngineState()
	stack := engine.NewStack()

	stop := wireInterrupt(state)
	defer stop()

	slog.Debug("parsing source", "source", source)
	parsed, err := lang.Parse(state, source)
	if err != nil {
		return WrapExitError(ExitFailure, "parse error", err)
	}

	span := value.UnknownSpan()
	out, err := lang.EvalPipeline(context.Background(), state, stack, parsed,
		pipeline.Empty(span), true, true)
	if err != nil {
		return WrapExitError(ExitFailure, "evaluation error", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.PrintValue(out.IntoValue(span))
}

// configureLogging sets the default slog handler based on verbosity.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// wireInterrupt connects SIGINT to the engine's cooperative interrupt
// flag. Commands poll the flag between iterations and stop cleanly
// with their partial result. The returned stop function releases the
// signal handler.
func wireInterrupt(state *engine.EngineState) func() {
	state.Interrupt = new(atomic.Bool)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			slog.Info("interrupt received, stopping after current iteration")
			state.Interrupt.Store(true)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
