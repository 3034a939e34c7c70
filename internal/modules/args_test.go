package modules

import (
	"errors"
	"testing"
)

func TestArgsString(t *testing.T) {
	args := Args{"name": "report.txt", "empty": "", "num": 3.0}

	if s, err := args.String("name"); err != nil || s != "report.txt" {
		t.Errorf("String(name) = %q, %v", s, err)
	}
	if _, err := args.String("missing"); !errors.Is(err, ErrBadArgs) {
		t.Errorf("String(missing) err = %v, want ErrBadArgs", err)
	}
	if _, err := args.String("empty"); !errors.Is(err, ErrBadArgs) {
		t.Errorf("String(empty) err = %v, want ErrBadArgs", err)
	}
	if _, err := args.String("num"); !errors.Is(err, ErrBadArgs) {
		t.Errorf("String(num) err = %v, want ErrBadArgs", err)
	}
	if got := args.StringOr("missing", "dflt"); got != "dflt" {
		t.Errorf("StringOr = %q", got)
	}
}

func TestArgsNumbers(t *testing.T) {
	args := Args{"x": 100.0, "ratio": 1.5, "lat": 51.5}

	if n, err := args.Int("x"); err != nil || n != 100 {
		t.Errorf("Int(x) = %d, %v", n, err)
	}
	if _, err := args.Int("ratio"); !errors.Is(err, ErrBadArgs) {
		t.Errorf("Int(ratio) err = %v, want ErrBadArgs", err)
	}
	if f, err := args.Float("lat"); err != nil || f != 51.5 {
		t.Errorf("Float(lat) = %v, %v", f, err)
	}
	if got := args.IntOr("missing", 5); got != 5 {
		t.Errorf("IntOr = %d", got)
	}
}

func TestArgsBoolAndStrings(t *testing.T) {
	args := Args{
		"is_unread": true,
		"email_ids": []any{"a1", "b2", ""},
	}

	if !args.Bool("is_unread") {
		t.Error("Bool(is_unread) = false")
	}
	if args.Bool("missing") {
		t.Error("Bool(missing) = true")
	}
	ids := args.Strings("email_ids")
	if len(ids) != 2 || ids[0] != "a1" || ids[1] != "b2" {
		t.Errorf("Strings = %v", ids)
	}
	if args.Strings("missing") != nil {
		t.Error("Strings(missing) != nil")
	}
}
