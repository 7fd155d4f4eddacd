// Package insight turns roster data into prompts for an external text
// generation service and returns whatever the service answers.
//
// The service is reached only through the Generator interface. Its
// answer is opaque: it is never parsed, only passed back verbatim. It
// may be prose, a JSON object like {"error": "..."}, or garbage; the
// only thing checked is that something came back at all.
package insight

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrUnavailable means the collaborator could not be reached or
// returned nothing.
var ErrUnavailable = errors.New("text generation unavailable")

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt).
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Command runs a helper program once per prompt. The prompt is passed
// as the final argument and the program's stdout is the answer.
type Command struct {
	Path    string
	Args    []string
	Timeout time.Duration
}

// Generate runs the helper and returns its trimmed stdout.
//
// A missing binary, a non-zero exit, a timeout, or empty output all
// wrap ErrUnavailable. Stderr is only used to enrich the error.
func (c *Command) Generate(ctx context.Context, prompt string) (string, error) {
	if c.Path == "" {
		return "", fmt.Errorf("Command.Generate: %w: no command configured", ErrUnavailable)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, c.Args...), prompt)
	cmd := exec.CommandContext(ctx, c.Path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("Command.Generate: %w: %w: %s", ErrUnavailable, err, msg)
		}
		return "", fmt.Errorf("Command.Generate: %w: %w", ErrUnavailable, err)
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", fmt.Errorf("Command.Generate: %w: empty response", ErrUnavailable)
	}
	return out, nil
}
