package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dir, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	got := defaultConfigPath()
	if want := filepath.Join(dir, appName, defaultConfigFilename); got != want {
		t.Errorf("got %q, expected %q", got, want)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("default config path %q is relative to the working directory", got)
	}
}

func TestCleanPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MT19937_TEST_DIR", "/tmp/mt")

	tests := map[string]string{
		"":                            "",
		"~/state.txt":                 filepath.Join(home, "state.txt"),
		"$MT19937_TEST_DIR/state.txt": "/tmp/mt/state.txt",
		"a/../b//c":                   "b/c",
	}
	for in, want := range tests {
		if got := cleanPath(in); got != want {
			t.Errorf("cleanPath(%q): got %q, expected %q", in, got, want)
		}
	}
}
