package system

import (
	"context"
	"fmt"

	"github.com/go-vgo/robotgo"

	"aria/internal/modules"
)

// Mouse and keyboard control via robotgo. Coordinate clamping and
// key-name validation stay with the library.

func (m *Module) moveMouse(_ context.Context, args modules.Args) (string, error) {
	x, err := args.Int("x")
	if err != nil {
		return "", err
	}
	y, err := args.Int("y")
	if err != nil {
		return "", err
	}
	robotgo.Move(x, y)
	return fmt.Sprintf("Mouse moved to (%d, %d)", x, y), nil
}

func (m *Module) click(_ context.Context, args modules.Args) (string, error) {
	if args.Has("x") && args.Has("y") {
		x, err := args.Int("x")
		if err != nil {
			return "", err
		}
		y, err := args.Int("y")
		if err != nil {
			return "", err
		}
		robotgo.Move(x, y)
	}
	robotgo.Click()
	return "Mouse click executed", nil
}

func (m *Module) typeText(_ context.Context, args modules.Args) (string, error) {
	text, err := args.String("text")
	if err != nil {
		return "", err
	}
	robotgo.TypeStr(text)
	return fmt.Sprintf("Typed text: %s", text), nil
}

func (m *Module) pressKey(_ context.Context, args modules.Args) (string, error) {
	key, err := args.String("key")
	if err != nil {
		return "", err
	}
	if err := robotgo.KeyTap(key); err != nil {
		return "", fmt.Errorf("press key %q: %w", key, err)
	}
	return fmt.Sprintf("Key pressed: %s", key), nil
}
