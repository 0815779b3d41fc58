package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dantswain/nushell/internal/commands"
	"github.com/dantswain/nushell/internal/compiler"
	"github.com/dantswain/nushell/internal/engine"
	"github.com/dantswain/nushell/internal/lang"
	"github.com/dantswain/nushell/internal/pipeline"
	"github.com/dantswain/nushell/internal/store"
	"github.com/dantswain/nushell/internal/value"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string

	// TokenGenerator allows overriding the run token generator (for
	// testing). If nil, defaults to UUIDv7Generator.
	TokenGenerator engine.RunTokenGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <pipeline.cue>",
		Short: "Run a pipeline definition",
		Long: `Compile a CUE pipeline definition, evaluate it, and print the result.

The definition names the pipeline input and source. With --db, the
evaluation is recorded in a SQLite history database (created if it
doesn't exist).

Example:
  nush run ./pipelines/sum.cue
  nush run --db ./nush.db ./pipelines/sum.cue --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database")

	return cmd
}

func runPipeline(opts *RunOptions, path string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	slog.Info("compiling pipeline definition", "path", path)
	spec, err := compiler.CompileFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compile pipeline definition", err)
	}
	slog.Info("pipeline compiled", "name", spec.Name, "input_len", len(spec.Input))

	state := commands.NewEngineState()
	stack := engine.NewStack()

	stop := wireInterrupt(state)
	defer stop()

	parsed, err := lang.Parse(state, spec.Source)
	if err != nil {
		return WrapExitError(ExitFailure, "parse error", err)
	}

	span := value.UnknownSpan()
	input := pipeline.Empty(span)
	if len(spec.Input) > 0 {
		input = pipeline.FromList(spec.Input, span)
	}

	start := time.Now()
	out, err := lang.EvalPipeline(context.Background(), state, stack, parsed, input, true, true)
	if err != nil {
		return WrapExitError(ExitFailure, "evaluation error", err)
	}
	result := out.IntoValue(span)
	duration := time.Since(start)
	slog.Debug("pipeline evaluated", "duration", duration)

	if opts.Database != "" {
		if err := recordHistory(cmd.Context(), opts, spec, result, duration); err != nil {
			return err
		}
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.PrintValue(result)
}

// recordHistory writes the evaluation outcome to the history database.
func recordHistory(ctx context.Context, opts *RunOptions, spec *compiler.PipelineSpec, result value.Value, duration time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}

	gen := opts.TokenGenerator
	if gen == nil {
		gen = engine.UUIDv7Generator{}
	}
	runToken := gen.Generate()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	entry, err := store.NewEntry(runToken, spec.Name, spec.Source, result, duration)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build history entry", err)
	}
	if err := st.WriteEntry(ctx, entry); err != nil {
		return WrapExitError(ExitCommandError, "failed to record history", err)
	}
	slog.Info("history recorded", "id", entry.ID, "run_token", runToken)

	return nil
}
