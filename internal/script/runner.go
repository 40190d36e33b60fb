package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richdoc/internal/clipboard"
	"github.com/dshills/richdoc/internal/engine/editor"
	"github.com/dshills/richdoc/internal/logging"
	"github.com/dshills/richdoc/internal/markdown"
)

// DefaultTimeout bounds a run when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Runner executes scripts against one editor. A Runner is not safe for
// concurrent use.
type Runner struct {
	ed      *editor.Editor
	cb      clipboard.Clipboard
	timeout time.Duration
	out     io.Writer
	mdOpts  []markdown.Option
	logger  *logging.Logger

	// verbErr is the Go error behind the last Lua error raised by a verb.
	verbErr error
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-run time limit. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithClipboard makes doc.copy and doc.cut write to cb, and doc.paste read
// from it when called without an argument.
func WithClipboard(cb clipboard.Clipboard) Option {
	return func(r *Runner) {
		r.cb = cb
	}
}

// WithOutput sets where print writes. The default discards output.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithMarkdownOptions sets the options used by doc.markdown.
func WithMarkdownOptions(opts ...markdown.Option) Option {
	return func(r *Runner) {
		r.mdOpts = opts
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner for ed.
func NewRunner(ed *editor.Editor, opts ...Option) *Runner {
	r := &Runner{
		ed:      ed,
		timeout: DefaultTimeout,
		out:     io.Discard,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("script")
	return r
}

// Run executes code. source names the script in errors.
func (r *Runner) Run(ctx context.Context, source, code string) error {
	if source == "" {
		source = "<string>"
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	L := newSandboxedState()
	defer L.Close()
	L.SetContext(ctx)
	r.install(L)
	r.verbErr = nil

	start := time.Now()
	err := r.doWithRecovery(func() error {
		return L.DoString(code)
	})
	if err == nil {
		r.logger.Debug("ran %s in %s", source, time.Since(start))
		return nil
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		err = fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
	case ctx.Err() != nil:
		err = ctx.Err()
	case r.verbErr != nil && strings.Contains(err.Error(), r.verbErr.Error()):
		err = r.verbErr
	}
	r.logger.Warn("script %s failed: %v", source, err)
	return &Error{Source: source, Err: err}
}

// RunFile reads and executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Source: path, Err: err}
	}
	return r.Run(ctx, path, string(data))
}

func (r *Runner) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()
	return fn()
}

// newSandboxedState opens only the base, table, string and math libraries
// and removes every way to load code from outside the script.
func newSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// installPrint routes print to the runner's output, tab separated like
// the stock version.
func (r *Runner) installPrint(L *lua.LState) {
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		fmt.Fprintln(r.out, strings.Join(parts, "\t"))
		return 0
	}))
}
