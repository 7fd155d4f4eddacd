// Package cli maps command-line arguments to roster operations.
//
// It plays the role an HTTP router plays in a web service: an App holds
// a cobra root command with one subcommand per operation, runs the one
// named on the command line, and turns its error into a JSON error
// document and an exit code.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/aanand-mishra/roster/internal/utils/response"
)

// Exit codes returned by App.Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ErrUsage marks a malformed command line.
var ErrUsage = errors.New("usage")

// Usagef returns an error wrapping ErrUsage.
func Usagef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUsage}, args...)...)
}

// Args wraps a cobra argument check so that its failure is a usage
// error naming the command's synopsis.
func Args(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return Usagef("%s (%v)", cmd.Use, err)
		}
		return nil
	}
}

// FlagError turns a flag parsing failure into a usage error.
func FlagError(cmd *cobra.Command, err error) error {
	return Usagef("%s: %v", cmd.Name(), err)
}

// App is the command tree.
type App struct {
	root *cobra.Command
	log  *slog.Logger
}

// NewApp returns an App with no commands.
func NewApp(log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}

	a := &App{log: log}
	a.root = &cobra.Command{
		Use:           "roster",
		Short:         "Student roster records and analytics",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return Usagef("unknown command %q", args[0])
			}
			return nil
		},
		// No command prints the command list.
		RunE: func(cmd *cobra.Command, args []string) error {
			return response.WriteJSON(cmd.OutOrStdout(), response.OK(a.Usage()))
		},
	}
	a.root.CompletionOptions.DisableDefaultCmd = true
	a.root.SetFlagErrorFunc(FlagError)
	a.root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		a.write(cmd.OutOrStdout(), response.OK(a.Usage()))
	})

	return a
}

// Add registers commands under the root.
func (a *App) Add(cmds ...*cobra.Command) {
	a.root.AddCommand(cmds...)
}

// Run executes the command named by args[0], writing its JSON result to
// w, and returns the exit code.
func (a *App) Run(ctx context.Context, w io.Writer, args []string) int {
	// cobra falls back to os.Args when args is nil.
	if args == nil {
		args = []string{}
	}
	a.root.SetArgs(args)
	a.root.SetOut(w)
	a.root.SetErr(io.Discard)

	cmd, err := a.root.ExecuteContextC(ctx)
	if err == nil {
		return ExitOK
	}

	name := a.root.Name()
	if cmd != nil {
		name = cmd.Name()
	}
	a.log.Debug("command failed",
		slog.String("command", name),
		slog.String("error", err.Error()))

	a.write(w, response.GeneralError(err))
	if errors.Is(err, ErrUsage) {
		return ExitUsage
	}
	return ExitError
}

// Usage lists every command with its synopsis, sorted by name.
func (a *App) Usage() []string {
	var out []string
	for _, cmd := range a.root.Commands() {
		if !cmd.IsAvailableCommand() {
			continue
		}
		out = append(out, cmd.Use)
	}
	slices.Sort(out)
	return out
}

func (a *App) write(w io.Writer, data any) {
	if err := response.WriteJSON(w, data); err != nil {
		a.log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
