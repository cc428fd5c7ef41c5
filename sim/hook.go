// Package sim provides the hooking and ID facilities shared by the
// simulators.
package sim

// HookPos names a point in a run where hooks are invoked.
type HookPos struct {
	Name string
}

// HookCtx describes one hook invocation. Item is the value produced at Pos
// and Detail carries information about the run that produced it.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable is implemented by anything that hooks can observe.
type Hookable interface {
	// AcceptHook adds a hook that is invoked at every hook position.
	AcceptHook(hook Hook)
}

// Hook observes a Hookable. Hooks must not change the state they observe.
type Hook interface {
	// Func is called once per invocation with the invocation context.
	Func(ctx HookCtx)
}

// HookFunc turns an ordinary function into a Hook.
type HookFunc func(ctx HookCtx)

// Func calls f(ctx).
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase keeps the registered hooks of a Hookable and invokes them in
// registration order. Embed it to implement Hookable.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase without hooks.
func NewHookableBase() *HookableBase {
	return &HookableBase{}
}

// AcceptHook appends hook to the registered hooks.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook calls every registered hook with ctx.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
