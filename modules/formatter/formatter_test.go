package formatter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityReturnsInputUnchanged(t *testing.T) {
	f := Identity{}
	out, err := f.Format(context.Background(), "use a;\n")
	require.NoError(t, err)
	assert.Equal(t, "use a;\n", out)
}

func TestSubprocessFormatsThroughCat(t *testing.T) {
	f := NewSubprocess("cat")
	out, err := f.Format(context.Background(), "use a;\nuse b;\n")
	require.NoError(t, err)
	assert.Equal(t, "use a;\nuse b;\n", out)
}

func TestSubprocessAppendsTrailingNewline(t *testing.T) {
	f := NewSubprocess("printf", "%s", "use a;")
	out, err := f.Format(context.Background(), "use a;")
	require.NoError(t, err)
	assert.Equal(t, "use a;\n", out)
}

func TestSubprocessNonZeroExitIsErrExit(t *testing.T) {
	f := NewSubprocess("sh", "-c", "cat >/dev/null; exit 3")
	_, err := f.Format(context.Background(), "use a;\n")
	require.Error(t, err)
	var exitErr *ErrExit
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
}

func TestSubprocessMissingBinaryIsErrSpawn(t *testing.T) {
	f := NewSubprocess("usefix-formatter-that-does-not-exist")
	_, err := f.Format(context.Background(), "use a;\n")
	require.Error(t, err)
	var spawnErr *ErrSpawn
	require.ErrorAs(t, err, &spawnErr)
}
