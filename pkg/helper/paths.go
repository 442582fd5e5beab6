package helper

import (
	"os"
	"path/filepath"
)

const (
	defaultCfgDir  = "/etc/sessiongate"
	defaultPIDPath = "/var/run/sessiongate.pid"
)

// GetCfgPath returns the path to the configuration file.
//
// Priority:
// 1. If filename is an absolute path, return it directly.
// 2. Check ./{filename} and ./configs/{filename}
// 3. Otherwise, fallback to /etc/sessiongate/{filename}
func GetCfgPath(filename string) string {
	if filename == "" {
		panic("filename cannot be empty")
	}
	if filepath.IsAbs(filename) {
		return filename
	}

	for _, dir := range []string{".", "configs"} {
		if p := existingAbs(filepath.Join(dir, filename)); p != "" {
			return p
		}
	}
	return filepath.Join(defaultCfgDir, filename)
}

// GetPIDPath returns the path to the PID file: absolute paths as-is, relative
// paths under the working directory when their parent exists, otherwise
// /var/run/sessiongate.pid.
func GetPIDPath(filename string) string {
	if filename == "" {
		return defaultPIDPath
	}
	if filepath.IsAbs(filename) {
		return filename
	}

	abs, err := filepath.Abs(filename)
	if err != nil {
		return defaultPIDPath
	}
	if existingAbs(filepath.Dir(abs)) == "" {
		return defaultPIDPath
	}
	return abs
}

func existingAbs(p string) string {
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return ""
	}
	return abs
}
