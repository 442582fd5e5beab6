package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	tmp := t.TempDir()
	_ = os.Chdir(tmp)
	return tmp
}

func sameFile(t *testing.T, want, got string) {
	t.Helper()
	w, _ := filepath.EvalSymlinks(want)
	g, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, w, g)
}

func TestGetCfgPath(t *testing.T) {
	assert.Panics(t, func() { GetCfgPath("") })
	assert.Equal(t, "/tmp/test.yaml", GetCfgPath("/tmp/test.yaml"))

	tmp := chdirTemp(t)
	name := "sessiongate.yaml"

	assert.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	sameFile(t, filepath.Join(tmp, name), GetCfgPath(name))

	_ = os.Remove(name)
	_ = os.MkdirAll("configs", 0o755)
	assert.NoError(t, os.WriteFile(filepath.Join("configs", name), []byte("x"), 0o644))
	sameFile(t, filepath.Join(tmp, "configs", name), GetCfgPath(name))

	_ = os.Remove(filepath.Join("configs", name))
	assert.Equal(t, filepath.Join("/etc/sessiongate", name), GetCfgPath(name))
}

func TestGetPIDPath(t *testing.T) {
	assert.Equal(t, "/tmp/xx.pid", GetPIDPath("/tmp/xx.pid"))
	assert.Equal(t, "/var/run/sessiongate.pid", GetPIDPath(""))

	tmp := chdirTemp(t)
	got := GetPIDPath("proc.pid")
	assert.Equal(t, "proc.pid", filepath.Base(got))
	sameFile(t, tmp, filepath.Dir(got))
	assert.Equal(t, "/var/run/sessiongate.pid", GetPIDPath(filepath.Join("no", "such", "dir", "x.pid")))
}
