// Package formatter runs the merged `use` block text through an external
// formatter (rustfmt, or any other program speaking stdin/stdout text) so
// the final splice matches the surrounding file's style.
package formatter

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/antgroup/usefix/modules/command"
)

// ErrSpawn reports that the formatter process could not be started at all.
type ErrSpawn struct {
	Name string
	Err  error
}

func (e *ErrSpawn) Error() string { return fmt.Sprintf("formatter: spawn %q: %v", e.Name, e.Err) }
func (e *ErrSpawn) Unwrap() error { return e.Err }

// ErrIO reports a failure writing to the formatter's stdin or reading its
// stdout.
type ErrIO struct {
	Op  string
	Err error
}

func (e *ErrIO) Error() string { return fmt.Sprintf("formatter: %s: %v", e.Op, e.Err) }
func (e *ErrIO) Unwrap() error { return e.Err }

// ErrExit reports that the formatter process exited with a non-zero
// status.
type ErrExit struct {
	Code   int
	Stderr string
}

func (e *ErrExit) Error() string {
	return fmt.Sprintf("formatter: exited %d: %s", e.Code, e.Stderr)
}

// Formatter turns raw `use` block text into its formatted form.
type Formatter interface {
	Format(ctx context.Context, text string) (string, error)
}

// Identity returns its input unchanged; used when no --formatter was
// configured, or by tests that want to exercise the rest of the pipeline
// without spawning a process.
type Identity struct{}

func (Identity) Format(_ context.Context, text string) (string, error) { return text, nil }

// Subprocess shells out to an external formatter binary, feeding it text on
// stdin and reading the formatted result from stdout.
type Subprocess struct {
	Name string
	Args []string
}

func NewSubprocess(name string, args ...string) *Subprocess {
	return &Subprocess{Name: name, Args: args}
}

// Format spawns the formatter and pipes text through it, writing stdin and
// reading stdout concurrently to avoid deadlocking on a full pipe buffer.
func (f *Subprocess) Format(ctx context.Context, text string) (string, error) {
	var stderr bytes.Buffer
	cmd := command.NewFromOptions(ctx, &command.RunOpts{Stderr: &stderr}, f.Name, f.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", &ErrSpawn{Name: f.Name, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", &ErrSpawn{Name: f.Name, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return "", &ErrSpawn{Name: f.Name, Err: err}
	}

	var g errgroup.Group
	g.Go(func() error {
		defer stdin.Close()
		if _, err := io.WriteString(stdin, text); err != nil {
			return &ErrIO{Op: "write stdin", Err: err}
		}
		return nil
	})

	var out bytes.Buffer
	g.Go(func() error {
		if _, err := io.Copy(&out, stdout); err != nil {
			return &ErrIO{Op: "read stdout", Err: err}
		}
		// The subprocess's own output may or may not end in a trailing
		// newline; normalize so the splice always lands on a line
		// boundary.
		if out.Len() > 0 && out.Bytes()[out.Len()-1] != '\n' {
			out.WriteByte('\n')
		}
		return nil
	})

	// Both the stdin writer and stdout reader must finish before Wait is
	// called, or Wait can return while a read is still in flight.
	ioErr := g.Wait()
	waitErr := cmd.Wait()
	if ioErr != nil {
		return "", ioErr
	}
	if waitErr != nil {
		code := command.FromErrorCode(waitErr)
		return "", &ErrExit{Code: code, Stderr: stderr.String()}
	}
	return out.String(), nil
}
