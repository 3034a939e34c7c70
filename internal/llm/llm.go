package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"aria/internal/config"
)

// Intent is a single parsed command: an action name plus a loosely typed
// argument map. Action "none" marks a purely conversational utterance.
type Intent struct {
	Action string
	Args   map[string]any
}

// ActionNone is emitted by providers when the model produced no usable
// command, letting the caller fall through to chat.
const ActionNone = "none"

// None returns the fallback intent list providers hand back on parse failure.
func None() []Intent {
	return []Intent{{Action: ActionNone}}
}

// Role of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation history.
type Turn struct {
	ID      uuid.UUID
	Role    Role
	Content string
}

// NewTurn stamps a fresh turn with an ID.
func NewTurn(role Role, content string) Turn {
	return Turn{ID: uuid.New(), Role: role, Content: content}
}

// Client is the provider-agnostic interface for intent parsing and chat.
//
// ParseIntents never receives conversation history; GenerateResponse does.
type Client interface {
	Name() string
	ParseIntents(ctx context.Context, userInput, actionsPrompt string) ([]Intent, error)
	GenerateResponse(ctx context.Context, prompt string, history []Turn, systemPrompt string) (string, error)
}

// Factory builds a client from the loaded configuration.
type Factory func(cfg *config.Config) (Client, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a provider factory, typically from an init() in the
// provider's file. Panics on a duplicate name.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("llm: provider %q already registered", name))
	}
	registry[name] = f
}

// New constructs the client selected by cfg.Provider.
func New(cfg *config.Config) (Client, error) {
	registryMu.RLock()
	f, ok := registry[cfg.Provider]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("llm: unknown provider %q (registered: %v)", cfg.Provider, Registered())
	}
	return f(cfg)
}

// Registered lists provider names in stable order.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
