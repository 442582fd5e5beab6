package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList("a,b;c", ",;"))
	assert.Equal(t, []string{"a:1", "b:2", "c:3"}, SplitList("a:1; b:2,,c:3", ";,"))
	assert.Equal(t, []string{"a", "b=c"}, SplitList("a,b=c", ",;"))
	assert.Equal(t, []string{"a,b"}, SplitList("a,b", ""))
	assert.Empty(t, SplitList(" ; , ", ";,"))
}

func TestPIDManager(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "run", "sessiongate.pid")
	manager := NewPIDManager(pidFile)
	assert.Equal(t, pidFile, manager.GetPIDFile())

	require.NoError(t, manager.WritePID())
	content, err := os.ReadFile(pidFile)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(content)))

	pid, err := manager.ReadPID()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	// signal 0 only checks the process exists
	assert.NoError(t, manager.Signal(syscall.Signal(0)))

	require.NoError(t, manager.RemovePID())
	_, err = os.Stat(pidFile)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, manager.RemovePID())
}

func TestPIDManager_Errors(t *testing.T) {
	empty := NewPIDManager("")
	assert.ErrorIs(t, empty.WritePID(), ErrEmptyPIDFile)
	_, err := empty.ReadPID()
	assert.ErrorIs(t, err, ErrEmptyPIDFile)

	dir := t.TempDir()
	_, err = NewPIDManager(filepath.Join(dir, "missing.pid")).ReadPID()
	assert.ErrorContains(t, err, "failed to read PID file")

	bad := filepath.Join(dir, "bad.pid")
	require.NoError(t, os.WriteFile(bad, []byte("abc"), 0644))
	_, err = NewPIDManager(bad).ReadPID()
	assert.ErrorContains(t, err, "invalid PID format")

	zero := filepath.Join(dir, "zero.pid")
	require.NoError(t, os.WriteFile(zero, []byte("0\n"), 0644))
	assert.ErrorContains(t, NewPIDManager(zero).Signal(syscall.SIGTERM), "invalid PID value")
}
