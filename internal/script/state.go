package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Default limits for a Lua state.
const (
	DefaultTimeout        = 5 * time.Second
	DefaultOperationLimit = 1_000_000
)

// State wraps gopher-lua with a sandbox and execution limits.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes calls
// from Go; a running script holds it until it returns.
type State struct {
	L *lua.LState

	mu sync.Mutex

	timeout time.Duration
	output  io.Writer

	sandbox *Sandbox

	// failure is a fatal error raised by a Go function. It is reported
	// even if the script catches the Lua error with pcall.
	failure error

	closed bool
}

// Option configures a State or Runner.
type Option func(*options)

type options struct {
	timeout time.Duration
	output  io.Writer
	maxOps  int
}

func defaultOptions() options {
	return options{
		timeout: DefaultTimeout,
		output:  io.Discard,
		maxOps:  DefaultOperationLimit,
	}
}

// WithTimeout bounds the wall time of each execution. Zero disables the
// limit.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithOutput sets where print writes.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithOperationLimit bounds the number of grid calls per execution. Zero
// disables the limit.
func WithOperationLimit(n int) Option {
	return func(o *options) {
		o.maxOps = n
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...Option) *State {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newState(o)
}

func newState(o options) *State {
	s := &State{
		timeout: o.timeout,
		output:  o.output,
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	s.L = L

	openSafeLibraries(L)

	s.sandbox = NewSandbox(L, s.output)
	s.sandbox.Install()

	return s
}

// openSafeLibraries opens the Lua libraries that cannot reach the host.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package, channel, coroutine.
}

// DoString executes code. name identifies the chunk in errors.
func (s *State) DoString(ctx context.Context, name, code string) error {
	return s.run(ctx, name, func() error {
		fn, err := s.L.Load(strings.NewReader(code), name)
		if err != nil {
			return err
		}
		s.L.Push(fn)
		return s.L.PCall(0, lua.MultRet, nil)
	})
}

// DoFile reads and executes a Lua file.
func (s *State) DoFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return &Error{Name: path, Err: err}
	}
	return s.DoString(ctx, filepath.Base(path), string(data))
}

func (s *State) run(ctx context.Context, name string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.failure = nil
	top := s.L.GetTop()
	s.L.SetContext(ctx)
	defer func() {
		s.L.RemoveContext()
		s.L.SetTop(top)
	}()

	err := s.doWithRecovery(fn)

	switch {
	case s.failure != nil:
		err = s.failure
	case err == nil:
		return nil
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		err = fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	case ctx.Err() != nil:
		err = ctx.Err()
	}
	return &Error{Name: name, Err: err}
}

// doWithRecovery executes fn with panic recovery.
func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// fail records a fatal error and raises it in Lua. It does not return.
func (s *State) fail(L *lua.LState, err error) {
	s.failure = err
	L.RaiseError("%s", err.Error())
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// RegisterModule registers a global table of functions.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.SetGlobal(name, mod)
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
