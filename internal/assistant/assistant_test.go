package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"aria/internal/llm"
	"aria/internal/modules"
)

type fakeModule struct {
	name    string
	actions []modules.Action
}

func (m fakeModule) Name() string              { return m.name }
func (m fakeModule) Description() string       { return "do fake things" }
func (m fakeModule) Actions() []modules.Action { return m.actions }

type fakeClient struct {
	intents  []llm.Intent
	parseErr error
	reply    string
	chatErr  error

	parseCalls int
	chatCalls  int
	lastPrompt string
}

func (c *fakeClient) Name() string { return "fake" }

func (c *fakeClient) ParseIntents(ctx context.Context, input, prompt string) ([]llm.Intent, error) {
	c.parseCalls++
	c.lastPrompt = prompt
	return c.intents, c.parseErr
}

func (c *fakeClient) GenerateResponse(ctx context.Context, prompt string, history []llm.Turn, system string) (string, error) {
	c.chatCalls++
	return c.reply, c.chatErr
}

func TestProcessRoutesToHandler(t *testing.T) {
	var gotArgs modules.Args
	mod := fakeModule{name: "fake", actions: []modules.Action{{
		Name:        "greet",
		Description: "Greet someone.",
		Handler: func(ctx context.Context, args modules.Args) (string, error) {
			gotArgs = args
			return "Hello, Ada!", nil
		},
	}}}
	client := &fakeClient{intents: []llm.Intent{{Action: "greet", Args: map[string]any{"who": "Ada"}}}}
	a := New(client, time.UTC, mod)

	out := a.Process(context.Background(), Utterance{Text: "say hi to Ada", Source: SourceText})
	if out != "Hello, Ada!" {
		t.Fatalf("got %q", out)
	}
	if gotArgs["who"] != "Ada" {
		t.Fatalf("handler args = %v", gotArgs)
	}
	if client.chatCalls != 0 {
		t.Fatal("chat should not run when an action was dispatched")
	}
	if a.HistoryLen() != 2 {
		t.Fatalf("history length = %d, want 2", a.HistoryLen())
	}
}

func TestProcessUnknownActionSkipsHandlers(t *testing.T) {
	called := false
	mod := fakeModule{name: "fake", actions: []modules.Action{{
		Name: "greet",
		Handler: func(ctx context.Context, args modules.Args) (string, error) {
			called = true
			return "", nil
		},
	}}}
	client := &fakeClient{intents: []llm.Intent{{Action: "launch_rocket"}}}
	a := New(client, time.UTC, mod)

	out := a.Process(context.Background(), Utterance{Text: "launch the rocket"})
	if !strings.Contains(out, "don't know how to 'launch rocket'") {
		t.Fatalf("got %q", out)
	}
	if called {
		t.Fatal("registered handler must not run for an unknown action")
	}
}

func TestProcessHandlerErrorContained(t *testing.T) {
	mod := fakeModule{name: "fake", actions: []modules.Action{
		{
			Name: "boom",
			Handler: func(ctx context.Context, args modules.Args) (string, error) {
				return "", errors.New("disk on fire")
			},
		},
		{
			Name: "needy",
			Handler: func(ctx context.Context, args modules.Args) (string, error) {
				return "", modules.ErrBadArgs
			},
		},
	}}
	client := &fakeClient{intents: []llm.Intent{{Action: "boom"}, {Action: "needy"}}}
	a := New(client, time.UTC, mod)

	out := a.Process(context.Background(), Utterance{Text: "do both"})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two result lines, got %q", out)
	}
	if !strings.Contains(lines[0], "disk on fire") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "missing") {
		t.Errorf("line 2 = %q", lines[1])
	}
}

func TestProcessHandlerPanicContained(t *testing.T) {
	mod := fakeModule{name: "fake", actions: []modules.Action{{
		Name: "crash",
		Handler: func(ctx context.Context, args modules.Args) (string, error) {
			panic("nil map write")
		},
	}}}
	client := &fakeClient{intents: []llm.Intent{{Action: "crash"}}}
	a := New(client, time.UTC, mod)

	out := a.Process(context.Background(), Utterance{Text: "crash it"})
	if !strings.Contains(out, "something went wrong") {
		t.Fatalf("got %q", out)
	}
}

func TestProcessFallsBackToChat(t *testing.T) {
	client := &fakeClient{intents: llm.None(), reply: "I'm doing great, thanks!"}
	a := New(client, time.UTC)

	out := a.Process(context.Background(), Utterance{Text: "how are you?"})
	if out != "I'm doing great, thanks!" {
		t.Fatalf("got %q", out)
	}
	if client.chatCalls != 1 {
		t.Fatalf("chat calls = %d", client.chatCalls)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	client := &fakeClient{}
	a := New(client, time.UTC)

	out := a.Process(context.Background(), Utterance{Text: "   "})
	if !strings.Contains(out, "didn't catch") {
		t.Fatalf("got %q", out)
	}
	if client.parseCalls != 0 {
		t.Fatal("empty input must not reach the model")
	}
}

func TestParserPromptCarriesActionsAndDate(t *testing.T) {
	mod := fakeModule{name: "fake", actions: []modules.Action{{
		Name:        "greet",
		Description: "Greet someone.",
		Example:     `{"action": "greet", "who": "Ada"}`,
		Handler:     func(ctx context.Context, args modules.Args) (string, error) { return "", nil },
	}}}
	client := &fakeClient{intents: llm.None(), reply: "ok"}
	a := New(client, time.UTC, mod)

	a.Process(context.Background(), Utterance{Text: "hello"})
	for _, want := range []string{"AVAILABLE ACTIONS:", "- greet: Greet someone.", "CURRENT CONTEXT:", "Timezone: UTC"} {
		if !strings.Contains(client.lastPrompt, want) {
			t.Errorf("parser prompt missing %q", want)
		}
	}
	// The base parsing rules live with the provider; sending them here
	// too would duplicate them in the final system message.
	if strings.Contains(client.lastPrompt, "You are an automation parser") {
		t.Error("actions prompt must not carry the parsing rules")
	}
}

func TestParseFailureLeavesHistoryClean(t *testing.T) {
	client := &fakeClient{parseErr: errors.New("connection reset")}
	a := New(client, time.UTC)

	out := a.Process(context.Background(), Utterance{Text: "hello"})
	if !strings.Contains(out, "trouble understanding") {
		t.Fatalf("got %q", out)
	}
	if a.HistoryLen() != 0 {
		t.Fatalf("history length = %d, want 0 after a failed parse", a.HistoryLen())
	}
	if client.chatCalls != 0 {
		t.Fatal("chat must not run when parsing failed")
	}
}

func TestDuplicateActionFirstWins(t *testing.T) {
	first := fakeModule{name: "one", actions: []modules.Action{{
		Name:    "greet",
		Handler: func(ctx context.Context, args modules.Args) (string, error) { return "first", nil },
	}}}
	second := fakeModule{name: "two", actions: []modules.Action{{
		Name:    "greet",
		Handler: func(ctx context.Context, args modules.Args) (string, error) { return "second", nil },
	}}}
	client := &fakeClient{intents: []llm.Intent{{Action: "greet"}}}
	a := New(client, time.UTC, first, second)

	if out := a.Process(context.Background(), Utterance{Text: "greet"}); out != "first" {
		t.Fatalf("got %q", out)
	}
}

func TestReset(t *testing.T) {
	client := &fakeClient{intents: llm.None(), reply: "hi"}
	a := New(client, time.UTC)
	a.Process(context.Background(), Utterance{Text: "hello"})
	if a.HistoryLen() == 0 {
		t.Fatal("history should have turns")
	}
	a.Reset()
	if a.HistoryLen() != 0 {
		t.Fatal("history should be empty after reset")
	}
}
