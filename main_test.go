package main

import (
	"reflect"
	"testing"
)

func TestBuildEditorCommandSupportsQuotedPathAndArgs(t *testing.T) {
	template := `"/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code" -g "{target}" --reuse-window`
	name, args, err := buildEditorCommand(template, location{File: "/tmp/my file.go", Line: 12, Col: 4})
	if err != nil {
		t.Fatalf("buildEditorCommand returned error: %v", err)
	}

	if name != "/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code" {
		t.Fatalf("name = %q", name)
	}

	wantArgs := []string{"-g", "/tmp/my file.go:12:4", "--reuse-window"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args = %#v, want %#v", args, wantArgs)
	}
}

func TestBuildEditorCommandPreservesEmptyArgument(t *testing.T) {
	template := `cmd /C start "" "{file}"`
	name, args, err := buildEditorCommand(template, location{File: `C:\Program Files\Editor\file.go`, Line: 8, Col: 1})
	if err != nil {
		t.Fatalf("buildEditorCommand returned error: %v", err)
	}

	if name != "cmd" {
		t.Fatalf("name = %q, want cmd", name)
	}

	wantArgs := []string{"/C", "start", "", `C:\Program Files\Editor\file.go`}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args = %#v, want %#v", args, wantArgs)
	}
}

func TestBuildEditorCommandSubstitutesLineAndColumn(t *testing.T) {
	name, args, err := buildEditorCommand(`vim +{line} '{file}'`, location{File: "a b.go", Line: 30, Col: 2})
	if err != nil {
		t.Fatalf("buildEditorCommand returned error: %v", err)
	}
	if name != "vim" {
		t.Fatalf("name = %q, want vim", name)
	}
	wantArgs := []string{"+30", "a b.go"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args = %#v, want %#v", args, wantArgs)
	}
}

func TestBuildEditorCommandRejectsUnclosedQuote(t *testing.T) {
	if _, _, err := buildEditorCommand(`code -g "{target}`, location{File: "file.go", Line: 1, Col: 1}); err == nil {
		t.Fatalf("expected error for unclosed quote")
	}
}

func TestBuildEditorCommandRejectsEmpty(t *testing.T) {
	if _, _, err := buildEditorCommand("   ", location{File: "file.go", Line: 1, Col: 1}); err == nil {
		t.Fatalf("expected error for empty command")
	}
}

func TestBuildEditorCommandKeepsBackslashes(t *testing.T) {
	name, args, err := buildEditorCommand(`C:\tools\code.exe -g {target}`, location{File: `C:\repo\file.go`, Line: 3, Col: 2})
	if err != nil {
		t.Fatalf("buildEditorCommand returned error: %v", err)
	}
	if name != `C:\tools\code.exe` {
		t.Fatalf("name = %q", name)
	}

	wantArgs := []string{"-g", `C:\repo\file.go:3:2`}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args = %#v, want %#v", args, wantArgs)
	}
}

func TestRunFirstAvailableCommandSkipsMissing(t *testing.T) {
	var ran string
	found, err := runFirstAvailableCommand([][]string{
		{},
		{"tscolor-command-that-does-not-exist"},
		{"go", "version"},
	}, func(name string, args []string) error {
		ran = name
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || ran != "go" {
		t.Fatalf("found=%v ran=%q, want go", found, ran)
	}
}
