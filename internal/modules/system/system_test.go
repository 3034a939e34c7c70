package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aria/internal/modules"
)

func TestFileLifecycle(t *testing.T) {
	dir := t.TempDir()
	m := New()
	ctx := context.Background()

	sub := filepath.Join(dir, "notes")
	out, err := m.createFolder(ctx, modules.Args{"folder": sub})
	if err != nil {
		t.Fatalf("createFolder: %v", err)
	}
	if !strings.HasPrefix(out, "Folder created") {
		t.Errorf("createFolder = %q", out)
	}

	// second create reports existence, not an error
	out, err = m.createFolder(ctx, modules.Args{"folder": sub})
	if err != nil || !strings.HasPrefix(out, "Folder already exists") {
		t.Errorf("createFolder again = %q, %v", out, err)
	}

	file := filepath.Join(sub, "todo.txt")
	if _, err := m.writeFile(ctx, modules.Args{"filename": file, "content": "first line\n"}); err != nil {
		t.Fatalf("writeFile: %v", err)
	}
	if _, err := m.appendFile(ctx, modules.Args{"filename": file, "content": "second line\n"}); err != nil {
		t.Fatalf("appendFile: %v", err)
	}

	out, err = m.readFile(ctx, modules.Args{"filename": file})
	if err != nil {
		t.Fatalf("readFile: %v", err)
	}
	if !strings.Contains(out, "first line\nsecond line") {
		t.Errorf("readFile = %q", out)
	}

	dest := filepath.Join(sub, "copy.txt")
	if _, err := m.copyFile(ctx, modules.Args{"src": file, "dest": dest}); err != nil {
		t.Fatalf("copyFile: %v", err)
	}

	listing, err := m.listDirectory(ctx, modules.Args{"directory": sub})
	if err != nil {
		t.Fatalf("listDirectory: %v", err)
	}
	if !strings.Contains(listing, "todo.txt") || !strings.Contains(listing, "copy.txt") {
		t.Errorf("listDirectory = %q", listing)
	}

	moved := filepath.Join(dir, "moved.txt")
	if _, err := m.moveFile(ctx, modules.Args{"src": dest, "dest": moved}); err != nil {
		t.Fatalf("moveFile: %v", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("source still present after move")
	}

	if _, err := m.deleteFile(ctx, modules.Args{"filename": moved}); err != nil {
		t.Fatalf("deleteFile: %v", err)
	}
	if _, err := m.deleteFolder(ctx, modules.Args{"folder": sub}); err != nil {
		t.Fatalf("deleteFolder: %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	m := New()
	out, err := m.readFile(context.Background(), modules.Args{"filename": filepath.Join(t.TempDir(), "nope.txt")})
	if err != nil {
		t.Fatalf("readFile: %v", err)
	}
	if !strings.HasPrefix(out, "Error: File") {
		t.Errorf("readFile = %q", out)
	}
}

func TestListDirectoryOnFile(t *testing.T) {
	m := New()
	file := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := m.listDirectory(context.Background(), modules.Args{"directory": file})
	if err != nil {
		t.Fatalf("listDirectory: %v", err)
	}
	if !strings.Contains(out, "is not a directory") {
		t.Errorf("listDirectory = %q", out)
	}
}

func TestMissingArgs(t *testing.T) {
	m := New()
	if _, err := m.writeFile(context.Background(), modules.Args{}); !errors.Is(err, modules.ErrBadArgs) {
		t.Errorf("writeFile err = %v, want ErrBadArgs", err)
	}
	if _, err := m.renameFile(context.Background(), modules.Args{"src": "a"}); !errors.Is(err, modules.ErrBadArgs) {
		t.Errorf("renameFile err = %v, want ErrBadArgs", err)
	}
}

func TestActionNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range New().Actions() {
		if seen[a.Name] {
			t.Errorf("duplicate action %q", a.Name)
		}
		seen[a.Name] = true
		if a.Handler == nil {
			t.Errorf("action %q has nil handler", a.Name)
		}
		if a.Example == "" || a.Description == "" {
			t.Errorf("action %q missing prompt metadata", a.Name)
		}
	}
}
