package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePIDFileAndStatus(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "run", "ip-service.pid")

	require.NoError(t, WritePIDFile(pidFile))

	running, pid := GetStatus(pidFile)
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), pid)
	assert.True(t, IsRunning(pidFile))

	RemovePIDFile(pidFile)
	assert.NoFileExists(t, pidFile)
}

func TestStatusWithoutPIDFile(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "absent.pid")

	running, pid := GetStatus(pidFile)
	assert.False(t, running)
	assert.Zero(t, pid)
	assert.False(t, IsRunning(pidFile))

	_, err := StopProcess(pidFile)
	assert.Error(t, err)
}

func TestInvalidPIDFile(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "bad.pid")
	require.NoError(t, os.WriteFile(pidFile, []byte("not-a-pid"), 0o644))

	running, _ := GetStatus(pidFile)
	assert.False(t, running)

	_, err := StopProcess(pidFile)
	assert.Error(t, err)
}

func TestIsChild(t *testing.T) {
	t.Setenv(ChildEnv, "1")
	assert.True(t, IsChild())

	t.Setenv(ChildEnv, "")
	assert.False(t, IsChild())
}
