// cmd/station/main_test.go
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func newApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:     "station",
		Writer:   out,
		Commands: []*cli.Command{runCommand(), submitCommand(), versionCommand()},
	}
}

func TestSubmit_Scenario(t *testing.T) {
	var out bytes.Buffer
	args := []string{"station", "submit", "--seed", "1", "--code", "4", "--code", "153", "--code", "3"}

	if err := newApp(&out).Run(args); err != nil {
		t.Fatalf("Run() err=%v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "SET_WORKPIECE_TYPE_122") || !strings.HasSuffix(lines[0], "UNDEFINED, COMMAND_ACK") {
		t.Fatalf("line 0: %q", lines[0])
	}
	if !strings.Contains(lines[1], "CommandCode(0x99)") || !strings.HasSuffix(lines[1], "INVALID_COMMAND, ERROR") {
		t.Fatalf("line 1: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "INVALID_COMMAND, ERROR") {
		t.Fatalf("line 2: %q", lines[2])
	}
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	if err := newApp(&out).Run([]string{"station", "version"}); err != nil {
		t.Fatalf("Run() err=%v", err)
	}
	if !strings.HasPrefix(out.String(), "station "+version) {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	var out bytes.Buffer
	app := newApp(&out)
	app.ErrWriter = &out

	if err := app.Run([]string{"station", "run"}); err == nil {
		t.Fatalf("expected missing flag error, got nil")
	}
}
