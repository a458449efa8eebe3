package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/docxedit/docerr"
	"github.com/tsawler/docxedit/internal/metrics"
)

// Registry holds the available tools and runs them against one Env.
// Lookup is safe for concurrent use; calls are not, since they share the
// session.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
	order []*Tool

	env     *Env
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewRegistry creates an empty registry whose tools run against env. log and
// m may be nil.
func NewRegistry(env *Env, log *zap.Logger, m *metrics.Metrics) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	if env.Session != nil {
		log = log.With(zap.String("session", env.Session.ID))
	}
	return &Registry{
		tools:   make(map[string]*Tool),
		env:     env,
		log:     log,
		metrics: m,
	}
}

// Register adds a tool to the registry.
// Returns an error if a tool with the same name already exists.
func (r *Registry) Register(tool *Tool) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, tool.Name)
	}
	r.tools[tool.Name] = tool
	r.order = append(r.order, tool)

	r.log.Debug("registered tool", zap.String("tool", tool.Name), zap.String("category", string(tool.Category)))
	return nil
}

// MustRegister registers a tool and panics on error.
// Use this for static tool registration at init time.
func (r *Registry) MustRegister(tool *Tool) {
	if err := r.Register(tool); err != nil {
		panic(fmt.Sprintf("failed to register tool %s: %v", tool.Name, err))
	}
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// All returns the registered tools in registration order.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Tool, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Call runs the named tool with args, a JSON object. It never panics: every
// failure, including a panic inside the tool, comes back in the Result.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (res Result) {
	start := time.Now()
	res.Tool = name

	tool := r.Get(name)
	if tool == nil {
		res.Err = docerr.Wrap(docerr.Invalid, ErrToolNotFound, "unknown tool %q", name)
		res.Kind = docerr.Invalid
		r.log.Warn("unknown tool", zap.String("tool", name))
		return res
	}

	defer func() {
		if p := recover(); p != nil {
			res.Text = ""
			res.Err = fmt.Errorf("%w: %v", ErrToolPanicked, p)
			r.log.Error("tool panicked", zap.String("tool", name), zap.Any("panic", p), zap.Stack("stack"))
		}
		res.Duration = time.Since(start)
		res.Kind = docerr.KindOf(res.Err)
		r.record(res)
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	if err := checkRequired(tool, args); err != nil {
		res.Err = err
		return res
	}
	res.Text, res.Err = tool.Execute(ctx, r.env, args)
	return res
}

func (r *Registry) record(res Result) {
	if res.OK() {
		r.log.Debug("tool completed", zap.String("tool", res.Tool), zap.Duration("duration", res.Duration))
	} else {
		fields := []zap.Field{
			zap.String("tool", res.Tool),
			zap.Stringer("kind", res.Kind),
			zap.Duration("duration", res.Duration),
			zap.Error(res.Err),
		}
		switch res.Kind {
		case docerr.IOFailure, docerr.Unknown:
			r.log.Error("tool failed", fields...)
		default:
			r.log.Warn("tool failed", fields...)
		}
	}
	r.metrics.ObserveCommand(res.Tool, res.OK(), res.Duration)
	if r.env.Session != nil {
		r.metrics.SetDocumentOpen(r.env.Session.IsOpen())
	}
}

// checkRequired checks that all required arguments are present.
func checkRequired(tool *Tool, args json.RawMessage) error {
	if len(tool.Schema.Required) == 0 {
		return nil
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(orEmptyObject(args), &present); err != nil {
		return docerr.Wrap(docerr.Invalid, err, "invalid arguments")
	}
	for _, name := range tool.Schema.Required {
		if _, ok := present[name]; !ok {
			return &docerr.Error{Kind: docerr.Invalid, Err: fmt.Errorf("%w: %s", ErrMissingRequiredArg, name)}
		}
	}
	return nil
}

// IsNotFound reports whether err came from calling an unregistered tool.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrToolNotFound)
}
