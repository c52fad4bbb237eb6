package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"userbot/internal/shared/logger"
)

// Handler runs one command invocation. Returned AppErrors are shown to the
// user; any other error is reported with a generic message.
type Handler func(ctx context.Context, c *Context) error

type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	Handler     Handler
}

// Context is what a handler sees of its invocation.
type Context struct {
	InvocationID string
	Command      string
	Message      *Message
	Host         Host
	// Parameters are the whitespace separated words after the command.
	Parameters []string
	// Arguments is the raw text after the command.
	Arguments string
	Logger    logger.Interface
}

// Source is the message a command acts on: the replied-to message when it
// carries text or a caption, otherwise the command message itself.
func (c *Context) Source() *Message {
	if c.Message.ReplyTo != nil && c.Message.ReplyTo.Content() != "" {
		return c.Message.ReplyTo
	}
	return c.Message
}

var (
	ErrDuplicateCommand = errors.New("plugin: command already registered")
	ErrInvalidCommand   = errors.New("plugin: invalid command")
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
	names    map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		names:    make(map[string]string),
	}
}

func (r *Registry) Register(cmd Command) error {
	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	if name == "" || strings.ContainsAny(name, " \t\n@") || cmd.Handler == nil {
		return fmt.Errorf("%w: %q", ErrInvalidCommand, cmd.Name)
	}
	cmd.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{name}, cmd.Aliases...)
	for i, key := range keys {
		key = strings.ToLower(key)
		keys[i] = key
		if _, exists := r.names[key]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, key)
		}
	}

	r.commands[name] = &cmd
	for _, key := range keys {
		r.names[key] = name
	}
	return nil
}

// MustRegister panics on registration errors. Use it for built-in commands.
func (r *Registry) MustRegister(cmds ...Command) {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
}

// Lookup finds a command by name or alias, case-insensitively.
func (r *Registry) Lookup(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.names[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return r.commands[canonical], true
}

// List returns the registered commands sorted by name.
func (r *Registry) List() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, *cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
