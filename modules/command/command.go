package command

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"
)

// Command wraps an os/exec.Cmd spawned through a Shepherd, tracking the
// shepherd's live-process count and making Wait idempotent so a caller
// racing a context cancellation against normal completion never
// double-reports the exit error.
type Command struct {
	rawCmd    *exec.Cmd
	context   context.Context
	startTime time.Time
	s         *shepherd
	detached  bool
	once      sync.Once
	waitError error
}

func (c *Command) Start() error {
	c.startTime = time.Now()
	if c.rawCmd.Stderr == nil {
		c.rawCmd.Stderr = os.Stderr
	}
	if err := c.rawCmd.Start(); err != nil {
		return err
	}
	c.s.inc()
	return nil
}

func (c *Command) wait() {
	if err := c.rawCmd.Wait(); err != nil && c.context.Err() != context.DeadlineExceeded {
		c.waitError = err
		return
	}
	c.waitError = c.context.Err()
}

// Wait blocks until the process exits. Safe to call more than once — only
// the first call actually waits; later callers just see the same result.
func (c *Command) Wait() error {
	c.once.Do(func() {
		if c.rawCmd == nil {
			return
		}
		c.wait()
		c.s.dec()
	})
	return c.waitError
}

func (c *Command) UseTime() time.Duration {
	return time.Since(c.startTime)
}

func (c *Command) Run() error {
	if err := c.Start(); err != nil {
		return err
	}
	return c.Wait()
}

func (c *Command) StdoutPipe() (io.ReadCloser, error) {
	return c.rawCmd.StdoutPipe()
}

func (c *Command) StderrPipe() (io.ReadCloser, error) {
	return c.rawCmd.StderrPipe()
}

func (c *Command) StdinPipe() (io.WriteCloser, error) {
	return c.rawCmd.StdinPipe()
}
