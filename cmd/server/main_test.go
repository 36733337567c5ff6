package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	cmd := newVersionCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out.String()) != version {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestSlotsResetRejectsUnknownSlot(t *testing.T) {
	cmd := newSlotsCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"reset", "wc_unknown"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown slot") {
		t.Fatalf("expected unknown slot error, got %v", err)
	}
}

func TestAdminAddRequiresCredentials(t *testing.T) {
	cmd := newAdminCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"add", "--email", "ops@uni.edu"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error without password")
	}
}
