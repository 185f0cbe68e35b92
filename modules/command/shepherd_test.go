package command

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromOptionsCapturesStdout(t *testing.T) {
	var stdout strings.Builder
	cmd := NewFromOptions(context.Background(), &RunOpts{Dir: ".", Stdout: &stdout}, "echo", "pub use a::b;")
	require.NoError(t, cmd.Start())
	require.NoError(t, cmd.Wait())
	assert.Equal(t, "pub use a::b;\n", stdout.String())
}

func TestNewFromOptionsPipesStdin(t *testing.T) {
	var stdout bytes.Buffer
	cmd := NewFromOptions(context.Background(), &RunOpts{Stdin: strings.NewReader("use a;\n"), Stdout: &stdout}, "cat")
	require.NoError(t, cmd.Run())
	assert.Equal(t, "use a;\n", stdout.String())
}

func TestNewFromOptionsMissingBinaryErrorsOnStart(t *testing.T) {
	cmd := New(context.Background(), ".", "usefix-nonexistent-formatter-binary---")
	assert.Error(t, cmd.Start())
}

func TestProcessesCountTracksLifecycle(t *testing.T) {
	before := ProcessesCount()
	cmd := New(context.Background(), ".", "true")
	require.NoError(t, cmd.Run())
	assert.Equal(t, before, ProcessesCount())
}

func TestWaitIsIdempotent(t *testing.T) {
	cmd := New(context.Background(), ".", "true")
	require.NoError(t, cmd.Run())
	assert.NoError(t, cmd.Wait())
}

func TestWaitRespectsContextTimeout(t *testing.T) {
	newCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	cmd := NewFromOptions(newCtx, &RunOpts{}, "sleep", "10")
	err := cmd.Run()
	assert.Error(t, err)
}
