// Package system provides OS automation: file management, application
// launch, and mouse/keyboard control.
package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"aria/internal/modules"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) Name() string { return "system" }

func (m *Module) Description() string {
	return "perform system automation tasks such as listing, creating, reading, writing, moving, and deleting files and folders, launching applications, and controlling mouse and keyboard"
}

func (m *Module) Actions() []modules.Action {
	return []modules.Action{
		{
			Name:        "create_folder",
			Description: "Creates a new folder at the specified path.",
			Example:     `{"action":"create_folder","folder":"DIRECTORY"}`,
			Handler:     m.createFolder,
		},
		{
			Name:        "create_file",
			Description: "Creates a new empty file at the specified path.",
			Example:     `{"action":"create_file","filename":"DIRECTORY/FILENAME"}`,
			Handler:     m.createFile,
		},
		{
			Name:        "write_file",
			Description: "Writes content to a file, creating it if it doesn't exist. Overwrites existing content.",
			Example:     `{"action":"write_file","filename":"myfile.txt","content":"Hello World"}`,
			Handler:     m.writeFile,
		},
		{
			Name:        "append_file",
			Description: "Appends content to a file, creating it if it doesn't exist.",
			Example:     `{"action":"append_file","filename":"mylog.txt","content":"New log entry."}`,
			Handler:     m.appendFile,
		},
		{
			Name:        "read_file",
			Description: "Reads and returns the text content of a specified file.",
			Example:     `{"action":"read_file","filename":"my_document.txt"}`,
			Handler:     m.readFile,
		},
		{
			Name:        "delete_file",
			Description: "Deletes a file.",
			Example:     `{"action":"delete_file","filename":"FILENAME"}`,
			Handler:     m.deleteFile,
		},
		{
			Name:        "delete_folder",
			Description: "Deletes a folder and its contents.",
			Example:     `{"action":"delete_folder","folder":"DIRECTORY"}`,
			Handler:     m.deleteFolder,
		},
		{
			Name:        "list_directory",
			Description: "Lists the contents (files and subfolders) of a specified directory.",
			Example:     `{"action":"list_directory","directory":"my_folder"}`,
			Handler:     m.listDirectory,
		},
		{
			Name:        "rename_file",
			Description: "Renames a file.",
			Example:     `{"action":"rename_file","src":"old_name.txt","dest":"new_name.txt"}`,
			Handler:     m.renameFile,
		},
		{
			Name:        "copy_file",
			Description: "Copies a file from source to destination.",
			Example:     `{"action":"copy_file","src":"source.txt","dest":"destination/copy.txt"}`,
			Handler:     m.copyFile,
		},
		{
			Name:        "move_file",
			Description: "Moves a file from source to destination.",
			Example:     `{"action":"move_file","src":"source.txt","dest":"destination/moved.txt"}`,
			Handler:     m.moveFile,
		},
		{
			Name:        "open_application",
			Description: "Opens an application by its full path or common name.",
			Example:     `{"action":"open_application","path":"firefox"}`,
			Handler:     m.openApplication,
		},
		{
			Name:        "move_mouse",
			Description: "Moves the mouse cursor to specific X and Y coordinates.",
			Example:     `{"action":"move_mouse","x":100,"y":200}`,
			Handler:     m.moveMouse,
		},
		{
			Name:        "click",
			Description: "Performs a mouse click at the current cursor position or specified coordinates.",
			Example:     `{"action":"click"}`,
			Handler:     m.click,
		},
		{
			Name:        "type_text",
			Description: "Types the specified text using the keyboard.",
			Example:     `{"action":"type_text","text":"Hello World"}`,
			Handler:     m.typeText,
		},
		{
			Name:        "press_key",
			Description: "Presses a specific keyboard key (e.g. 'enter', 'esc', 'tab').",
			Example:     `{"action":"press_key","key":"enter"}`,
			Handler:     m.pressKey,
		},
	}
}

func (m *Module) createFolder(_ context.Context, args modules.Args) (string, error) {
	folder, err := args.String("folder")
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(folder); err == nil {
		return fmt.Sprintf("Folder already exists: %s", folder), nil
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}
	return fmt.Sprintf("Folder created: %s", folder), nil
}

func (m *Module) createFile(_ context.Context, args modules.Args) (string, error) {
	filename, err := args.String("filename")
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filename); err == nil {
		return fmt.Sprintf("File already exists: %s", filename), nil
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return "", fmt.Errorf("create parent: %w", err)
	}
	if err := os.WriteFile(filename, nil, 0o644); err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	return fmt.Sprintf("File created: %s", filename), nil
}

func (m *Module) writeFile(_ context.Context, args modules.Args) (string, error) {
	filename, err := args.String("filename")
	if err != nil {
		return "", err
	}
	content := args.StringOr("content", "")
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return "", fmt.Errorf("create parent: %w", err)
	}
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return fmt.Sprintf("File written: %s", filename), nil
}

func (m *Module) appendFile(_ context.Context, args modules.Args) (string, error) {
	filename, err := args.String("filename")
	if err != nil {
		return "", err
	}
	content := args.StringOr("content", "")
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return "", fmt.Errorf("create parent: %w", err)
	}
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return "", fmt.Errorf("append: %w", err)
	}
	return fmt.Sprintf("Content appended to file: %s", filename), nil
}

func (m *Module) readFile(_ context.Context, args modules.Args) (string, error) {
	filename, err := args.String("filename")
	if err != nil {
		return "", err
	}
	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Sprintf("Error: File '%s' does not exist.", filename), nil
	}
	if info.IsDir() {
		return fmt.Sprintf("Error: Path '%s' is not a file. Please specify a file to read its contents.", filename), nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return fmt.Sprintf("Content of '%s':\n---\n%s\n---", filename, content), nil
}

func (m *Module) deleteFile(_ context.Context, args modules.Args) (string, error) {
	filename, err := args.String("filename")
	if err != nil {
		return "", err
	}
	if err := os.Remove(filename); err != nil {
		return "", fmt.Errorf("delete file: %w", err)
	}
	return fmt.Sprintf("File deleted: %s", filename), nil
}

func (m *Module) deleteFolder(_ context.Context, args modules.Args) (string, error) {
	folder, err := args.String("folder")
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(folder); err != nil {
		return "", fmt.Errorf("delete folder: %w", err)
	}
	return fmt.Sprintf("Folder deleted: %s", folder), nil
}

func (m *Module) listDirectory(_ context.Context, args modules.Args) (string, error) {
	directory, err := args.String("directory")
	if err != nil {
		return "", err
	}
	info, err := os.Stat(directory)
	if err != nil {
		return fmt.Sprintf("Error: Directory '%s' does not exist.", directory), nil
	}
	if !info.IsDir() {
		return fmt.Sprintf("Error: Path '%s' is not a directory. Please specify a folder to list its contents.", directory), nil
	}
	entries, err := os.ReadDir(directory)
	if err != nil {
		return "", fmt.Errorf("list directory: %w", err)
	}
	if len(entries) == 0 {
		return "<empty>", nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return strings.Join(names, "\n"), nil
}

func (m *Module) renameFile(_ context.Context, args modules.Args) (string, error) {
	src, err := args.String("src")
	if err != nil {
		return "", err
	}
	dest, err := args.String("dest")
	if err != nil {
		return "", err
	}
	if err := os.Rename(src, dest); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}
	return fmt.Sprintf("File renamed: %s -> %s", src, dest), nil
}

func (m *Module) copyFile(_ context.Context, args modules.Args) (string, error) {
	src, err := args.String("src")
	if err != nil {
		return "", err
	}
	dest, err := args.String("dest")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create parent: %w", err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}
	if err := os.WriteFile(dest, data, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write destination: %w", err)
	}
	return fmt.Sprintf("File copied: %s -> %s", src, dest), nil
}

func (m *Module) moveFile(_ context.Context, args modules.Args) (string, error) {
	src, err := args.String("src")
	if err != nil {
		return "", err
	}
	dest, err := args.String("dest")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create parent: %w", err)
	}
	if err := os.Rename(src, dest); err != nil {
		return "", fmt.Errorf("move: %w", err)
	}
	return fmt.Sprintf("File moved: %s -> %s", src, dest), nil
}

func (m *Module) openApplication(ctx context.Context, args modules.Args) (string, error) {
	path, err := args.String("path")
	if err != nil {
		return "", err
	}

	if found, err := exec.LookPath(path); err == nil {
		cmd := exec.CommandContext(ctx, found)
		if err := cmd.Start(); err != nil {
			return "", fmt.Errorf("launch %s: %w", found, err)
		}
		return fmt.Sprintf("Launched application: %s", found), nil
	}

	// Not on PATH; hand it to the desktop opener.
	var opener string
	switch runtime.GOOS {
	case "darwin":
		opener = "open"
	case "windows":
		opener = "start"
	default:
		opener = "xdg-open"
	}
	cmd := exec.CommandContext(ctx, opener, path)
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("launch %q: %w", path, err)
	}
	return fmt.Sprintf("Attempted to launch application: %s", path), nil
}
