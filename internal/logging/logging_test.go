package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDir(t *testing.T) {
	exe := filepath.Join("opt", "idb", "idb-monitor")
	tests := []struct {
		name       string
		configured string
		exePath    string
		exeErr     error
		want       string
	}{
		{"Configured", "/var/log/idb", exe, nil, "/var/log/idb"},
		{"NextToBinary", "", exe, nil, filepath.Join("opt", "idb", "logs")},
		{"NoExecutable", "", "", errors.New("unsupported"), "logs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDir(tt.configured, tt.exePath, tt.exeErr); got != tt.want {
				t.Errorf("ResolveDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	if err := ensureWritable(dir); err != nil {
		t.Fatalf("ensureWritable() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Error("probe file should be removed")
	}
}
