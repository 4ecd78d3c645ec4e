package main

import (
	"errors"
	"testing"
)

func TestRunUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"paint"}} {
		if err := run(args); !errors.Is(err, errUsage) {
			t.Errorf("run(%q) = %v, want errUsage", args, err)
		}
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	for _, cmd := range []string{"version", "help", "--help"} {
		if err := run([]string{cmd}); err != nil {
			t.Errorf("run(%q) = %v", cmd, err)
		}
	}
}

func TestRunServeReturnsSetupError(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_SESSION_SECRET", "")
	t.Setenv("DATABASE_PATH", t.TempDir()+"/blog.db")
	err := run([]string{"serve"})
	if err == nil || errors.Is(err, errUsage) {
		t.Fatalf("expected a setup error, got %v", err)
	}
}
