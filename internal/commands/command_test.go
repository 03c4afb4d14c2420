package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add backlog pay rent", TypeAdd},
		{"edit c-1", TypeEdit},
		{"move c-1 right", TypeMove},
		{"drop c-1 done", TypeDrop},
		{"delete c-2", TypeDelete},
		{"search login bug", TypeSearch},
		{"label", TypeLabel},
		{"overdue on", TypeOverdue},
		{"export", TypeExport},
		{"import board.json", TypeImport},
		{"theme toggle", TypeTheme},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddOptions(t *testing.T) {
	cmd, err := Parse("add Done Ship the release labels:a,b due:2026-03-01")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	a := cmd.Add
	if a.List != "done" || a.Title != "Ship the release" || a.Labels != "a,b" || a.Due != "2026-03-01" {
		t.Fatalf("unexpected add args: %+v", a)
	}
}

func TestParseFilterTextKeepsSpaces(t *testing.T) {
	cmd, err := Parse("search Fix login")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Search.Text != "Fix login" {
		t.Fatalf("unexpected search text %q", cmd.Search.Text)
	}
	cmd, err = Parse("label")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Label.Text != "" {
		t.Fatalf("expected empty label to clear filter, got %q", cmd.Label.Text)
	}
}

func TestParseRejectsBadArguments(t *testing.T) {
	for _, in := range []string{
		"add backlog",
		"add backlog labels:x",
		"move c-1 up",
		"move c-1",
		"drop c-1",
		"delete",
		"overdue maybe",
		"import",
		"export a b",
		"theme blue",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := Parse("/unknown do x"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/move c-7 LEFT")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Move: func(a MoveArgs) (Result, error) {
			called = true
			if a.ID != "c-7" || a.Direction != "left" {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("overdue off")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
