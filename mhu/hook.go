package mhu

// HookPos names a position in the mailbox protocol where hooks fire.
type HookPos struct {
	Name string
}

// HookPosSend marks a message being deposited into the transmit window.
var HookPosSend = &HookPos{Name: "Send"}

// HookPosComplete marks a receive completion handed back to the consumer.
var HookPosComplete = &HookPos{Name: "Complete"}

// HookPosSpurious marks a receive interrupt that did not belong to the
// channel: status clear, or no descriptor armed.
var HookPosSpurious = &HookPos{Name: "Spurious"}

// HookPosStop marks a channel discarding its outstanding descriptor on
// stop.
var HookPosStop = &HookPos{Name: "Stop"}

// HookCtx carries the information about the site where a hook fires.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// A Hook is a short piece of program invoked by a hookable object.
//
// Hooks on the receive path run in interrupt context and must not block.
type Hook interface {
	Func(ctx HookCtx)
}

// Hookable is an object that accepts hooks.
type Hookable interface {
	AcceptHook(hook Hook)
}

// HookableBase provides the AcceptHook implementation shared by hookable
// types.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks returns the number of registered hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook triggers every registered hook.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
