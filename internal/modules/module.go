// Package modules defines the contract every handler module satisfies: a
// name, a capability description for the chat prompt, and a set of named
// actions the intent parser can target.
package modules

import "context"

// Handler executes one action. The returned string is the user-facing
// result; errors are turned into failure messages by the dispatcher.
type Handler func(ctx context.Context, args Args) (string, error)

// Action describes one dispatchable capability of a module. Description and
// Example feed the parser prompt so the model knows the exact JSON shape.
type Action struct {
	Name        string
	Description string
	Example     string
	Handler     Handler
}

// Module is one integration (system, gmail, calendar, weather).
type Module interface {
	// Name is the short identifier used in configuration.
	Name() string
	// Description is a lowercase capability phrase, e.g.
	// "manage emails in Gmail (list, send, read, mark as read, delete)".
	Description() string
	Actions() []Action
}
