// pattern: Functional Core
package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// testApp returns an app whose help and exit codes are captured.
func testApp(t *testing.T) (*App, *bytes.Buffer, *int) {
	t.Helper()
	app := NewApp("1.0.0")
	stderr := &bytes.Buffer{}
	exitCode := -1
	app.Stderr = stderr
	app.ExitFunc = func(code int) { exitCode = code }
	return app, stderr, &exitCode
}

func TestApp_PrintHelp_ShowsGroupedCommands(t *testing.T) {
	app := NewApp("1.0.0")
	app.AddGroup("layout", "Edit the running layout")
	app.AddCommand(&Command{Name: "show", Summary: "Print a preview"})

	buf := &bytes.Buffer{}
	app.PrintHelp(buf)

	output := buf.String()
	for _, want := range []string{
		"Usage: framedock",
		"Command Groups (requires running instance)",
		"layout",
		"Print a preview",
		"Launch the interactive layout editor",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help missing %q:\n%s", want, output)
		}
	}
}

func TestApp_Execute_NoArgs_ReturnsTrueForTUI(t *testing.T) {
	app := NewApp("1.0.0")
	if !app.Execute(nil) {
		t.Error("Execute(nil) returned false, want true")
	}
}

func TestApp_Execute_UngroupedCommand_Dispatches(t *testing.T) {
	app, _, exitCode := testApp(t)
	var passed []string
	app.AddCommand(&Command{
		Name: "show",
		Run: func(args []string) error {
			passed = args
			return nil
		},
	})

	if app.Execute([]string{"show", "--layout", "Quad"}) {
		t.Error("Execute with command returned true, want false")
	}
	if len(passed) != 2 || passed[1] != "Quad" {
		t.Errorf("command received %v", passed)
	}
	if *exitCode != -1 {
		t.Errorf("exit code = %d, want no exit", *exitCode)
	}
}

func TestApp_Execute_GroupCommand_Dispatches(t *testing.T) {
	app, _, _ := testApp(t)
	group := app.AddGroup("layout", "Edit the running layout")

	var passed []string
	group.AddCommand(&Command{
		Name: "select",
		Run: func(args []string) error {
			passed = args
			return nil
		},
	})

	if app.Execute([]string{"layout", "select", "1"}) {
		t.Error("Execute with group command returned true, want false")
	}
	if len(passed) != 1 || passed[0] != "1" {
		t.Errorf("command received args %v, want [1]", passed)
	}
}

func TestApp_Execute_GroupHelp(t *testing.T) {
	for _, arg := range []string{"help", "--help", "-h"} {
		t.Run(arg, func(t *testing.T) {
			app, stderr, exitCode := testApp(t)
			group := app.AddGroup("layout", "Edit the running layout")
			group.AddCommand(&Command{Name: "drag", Summary: "Move an edge"})

			app.Execute([]string{"layout", arg})

			if !strings.Contains(stderr.String(), "drag") {
				t.Errorf("group help missing drag, got: %s", stderr.String())
			}
			if *exitCode != -1 {
				t.Errorf("exit code = %d, want no exit", *exitCode)
			}
		})
	}
}

func TestApp_Execute_CommandHelp_PrintsUsage(t *testing.T) {
	app, stderr, _ := testApp(t)
	group := app.AddGroup("layout", "Edit the running layout")

	runCalled := false
	group.AddCommand(&Command{
		Name:  "drag",
		Usage: "Usage: framedock layout drag --frame <id>",
		Run: func(args []string) error {
			runCalled = true
			return nil
		},
	})

	app.Execute([]string{"layout", "drag", "--help"})

	if runCalled {
		t.Error("Run was called, should have printed usage instead")
	}
	if !strings.Contains(stderr.String(), "Usage: framedock layout drag") {
		t.Errorf("usage not printed, got: %s", stderr.String())
	}
}

func TestApp_Execute_CommandError_ExitsWithCode1(t *testing.T) {
	app, stderr, exitCode := testApp(t)
	app.AddCommand(&Command{
		Name: "validate",
		Run:  func(args []string) error { return errors.New("2 problem(s) found") },
	})

	app.Execute([]string{"validate"})

	if *exitCode != 1 {
		t.Errorf("exit code = %d, want 1", *exitCode)
	}
	if got := stderr.String(); got != "error: 2 problem(s) found\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestApp_Execute_UnknownCommand_ExitsWithCode1(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "top level", args: []string{"frobnicate"}, want: "Usage: framedock [options]"},
		{name: "in group", args: []string{"layout", "frobnicate"}, want: "Usage: framedock layout <command>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, stderr, exitCode := testApp(t)
			app.AddGroup("layout", "Edit the running layout")

			if app.Execute(tt.args) {
				t.Error("unknown command should not launch the TUI")
			}
			if *exitCode != 1 {
				t.Errorf("exit code = %d, want 1", *exitCode)
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("stderr missing %q, got: %s", tt.want, stderr.String())
			}
		})
	}
}
