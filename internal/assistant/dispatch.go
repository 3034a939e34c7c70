package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"aria/internal/llm"
	"aria/internal/modules"
)

// dispatch routes a parsed intent to its registered handler and turns
// every failure mode, including a panicking handler, into a sentence
// the assistant can speak back.
func (a *Assistant) dispatch(ctx context.Context, intent llm.Intent) string {
	action, ok := a.actions[intent.Action]
	if !ok {
		slog.Warn("unknown action requested", "action", intent.Action)
		return fmt.Sprintf("Sorry, I don't know how to '%s'.", humanize(intent.Action))
	}
	return a.run(ctx, action, modules.Args(intent.Args))
}

func (a *Assistant) run(ctx context.Context, action modules.Action, args modules.Args) (result string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("handler panicked", "action", action.Name, "panic", r)
			result = fmt.Sprintf("Sorry, something went wrong while performing '%s'.", humanize(action.Name))
		}
	}()

	out, err := action.Handler(ctx, args)
	switch {
	case errors.Is(err, modules.ErrBadArgs):
		slog.Warn("handler rejected arguments", "action", action.Name, "err", err)
		return fmt.Sprintf("I couldn't do that, some required details for '%s' were missing.", humanize(action.Name))
	case err != nil:
		slog.Error("handler failed", "action", action.Name, "err", err)
		return fmt.Sprintf("Sorry, I ran into a problem with '%s': %v.", humanize(action.Name), err)
	}
	return out
}

func humanize(action string) string {
	return strings.ReplaceAll(action, "_", " ")
}
