package plugin

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "userbot/internal/shared/errors"
	"userbot/internal/shared/logger"
)

// MsgGenericError is shown when a handler fails without a user-facing message.
const MsgGenericError = "参数错误"

// CommandRecorder receives one observation per handled command.
type CommandRecorder interface {
	ObserveCommand(command, status string, elapsed time.Duration)
}

type DispatcherConfig struct {
	Prefixes []string
	// AllowedUserIDs restricts who may invoke commands. Empty allows everyone.
	AllowedUserIDs []int64
}

// Dispatcher routes chat messages to registered command handlers.
type Dispatcher struct {
	registry *Registry
	prefixes []string
	allowed  map[int64]bool
	recorder CommandRecorder
	logger   logger.Interface

	mu          sync.RWMutex
	botUsername string
}

func NewDispatcher(registry *Registry, cfg DispatcherConfig, recorder CommandRecorder, log logger.Interface) *Dispatcher {
	allowed := make(map[int64]bool, len(cfg.AllowedUserIDs))
	for _, id := range cfg.AllowedUserIDs {
		allowed[id] = true
	}
	return &Dispatcher{
		registry: registry,
		prefixes: cfg.Prefixes,
		allowed:  allowed,
		recorder: recorder,
		logger:   log,
	}
}

// SetBotUsername enables "/cmd@username" addressing.
func (d *Dispatcher) SetBotUsername(username string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.botUsername = username
}

func (d *Dispatcher) username() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.botUsername
}

// Dispatch runs the command in msg, if any, and reports whether a handler ran.
// Handler failures are reported to the chat through host.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *Message, host Host) bool {
	inv, ok := ParseCommand(msg.Content(), d.prefixes, d.username())
	if !ok {
		return false
	}
	cmd, ok := d.registry.Lookup(inv.Command)
	if !ok {
		return false
	}
	if !d.isAllowed(msg) {
		d.logger.Debugw("command from unauthorised sender ignored",
			"command", cmd.Name,
			"chat_id", msg.Chat.ID,
		)
		return false
	}

	id := uuid.NewString()
	log := d.logger.With("command", cmd.Name, "invocation_id", id, "chat_id", msg.Chat.ID)

	c := &Context{
		InvocationID: id,
		Command:      cmd.Name,
		Message:      msg,
		Host:         host,
		Parameters:   inv.Parameters,
		Arguments:    inv.Arguments,
		Logger:       log,
	}

	start := time.Now()
	err := d.run(ctx, cmd, c)
	elapsed := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		if apperrors.IsAppError(err) {
			status = "rejected"
			log.Infow("command rejected", "error", err)
		} else {
			log.Errorw("command failed", "error", err)
		}
		if editErr := host.Edit(ctx, apperrors.UserMessage(err, MsgGenericError)); editErr != nil {
			log.Errorw("failed to report command error", "error", editErr)
		}
	} else {
		log.Debugw("command handled", "elapsed", elapsed)
	}

	if d.recorder != nil {
		d.recorder.ObserveCommand(cmd.Name, status, elapsed)
	}
	return true
}

func (d *Dispatcher) run(ctx context.Context, cmd *Command, c *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Errorw("command handler panicked",
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return cmd.Handler(ctx, c)
}

func (d *Dispatcher) isAllowed(msg *Message) bool {
	if len(d.allowed) == 0 {
		return true
	}
	return msg.From != nil && d.allowed[msg.From.ID]
}
