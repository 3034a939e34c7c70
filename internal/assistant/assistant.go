// Package assistant glues the language model to the action modules: it
// parses user utterances into intents, dispatches them to handlers and
// falls back to free-form conversation when no action applies.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"aria/internal/llm"
	"aria/internal/modules"
)

// Source tells where an utterance came from.
type Source string

const (
	SourceVoice Source = "voice"
	SourceText  Source = "text"
)

type Utterance struct {
	Text   string
	Source Source
}

type Assistant struct {
	client  llm.Client
	actions map[string]modules.Action
	loc     *time.Location

	parserPrompt string
	chatPrompt   string

	mu      sync.Mutex
	history []llm.Turn
}

// New builds an assistant over the given modules. When two modules
// register the same action name the first one wins.
func New(client llm.Client, loc *time.Location, mods ...modules.Module) *Assistant {
	if loc == nil {
		loc = time.Local
	}
	a := &Assistant{
		client:  client,
		actions: make(map[string]modules.Action),
		loc:     loc,
	}
	descriptions := make([]string, 0, len(mods))
	for _, m := range mods {
		descriptions = append(descriptions, m.Description())
		for _, act := range m.Actions() {
			if _, dup := a.actions[act.Name]; dup {
				slog.Warn("duplicate action ignored", "module", m.Name(), "action", act.Name)
				continue
			}
			a.actions[act.Name] = act
		}
	}
	// Providers prepend the base parsing rules themselves; this side only
	// supplies the action list and, per request, the date context.
	a.parserPrompt = actionsBlock(a.actions)
	a.chatPrompt = llm.SystemChat + llm.CapabilitySentence(descriptions)
	return a
}

// actionsBlock lists every known action with its description and an
// example payload, in a stable order so prompts are reproducible.
func actionsBlock(actions map[string]modules.Action) string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("\n\nAVAILABLE ACTIONS:\n")
	for _, name := range names {
		act := actions[name]
		fmt.Fprintf(&b, "- %s: %s\n", name, act.Description)
		if act.Example != "" {
			fmt.Fprintf(&b, "  Example: %s\n", act.Example)
		}
	}
	return b.String()
}

// Process handles one utterance end to end and returns the reply that
// should be shown or spoken to the user.
func (a *Assistant) Process(ctx context.Context, u Utterance) string {
	text := strings.TrimSpace(u.Text)
	if text == "" {
		return "I didn't catch that, could you repeat?"
	}
	slog.Info("processing utterance", "source", u.Source, "text", text)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = append(a.history, llm.NewTurn(llm.RoleUser, text))

	parserPrompt := a.parserPrompt + dateContext(time.Now(), a.loc)
	intents, err := a.client.ParseIntents(ctx, text, parserPrompt)
	if err != nil {
		slog.Error("intent parsing failed", "err", err)
		// Drop the user turn so a transport failure does not leak into
		// the next conversation's context.
		a.history = a.history[:len(a.history)-1]
		return "Sorry, I'm having trouble understanding requests right now."
	}

	var results []string
	for _, intent := range intents {
		if intent.Action == llm.ActionNone {
			continue
		}
		results = append(results, a.dispatch(ctx, intent))
	}
	if len(results) > 0 {
		return a.remember(strings.Join(results, "\n"))
	}

	// Nothing actionable, hold a conversation instead.
	reply, err := a.client.GenerateResponse(ctx, text, a.history[:len(a.history)-1], a.chatPrompt)
	if err != nil {
		slog.Error("chat generation failed", "err", err)
		return a.remember("Sorry, I can't come up with an answer right now.")
	}
	return a.remember(reply)
}

// remember records the assistant's reply in the conversation history.
// Callers must hold a.mu.
func (a *Assistant) remember(reply string) string {
	a.history = append(a.history, llm.NewTurn(llm.RoleAssistant, reply))
	return reply
}

// Reset clears the conversation history.
func (a *Assistant) Reset() {
	a.mu.Lock()
	a.history = nil
	a.mu.Unlock()
	slog.Info("conversation history cleared")
}

// HistoryLen reports how many turns the conversation currently holds.
func (a *Assistant) HistoryLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.history)
}

// Actions returns the sorted names of every registered action.
func (a *Assistant) Actions() []string {
	names := make([]string, 0, len(a.actions))
	for name := range a.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
