package module

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Registry manages module registration and lifecycle.
// Modules are registered explicitly at startup; there is no hidden
// global instance.
type Registry struct {
	modules map[string]Module
	order   []string // initialization order
	ctx     *Context
	logger  *slog.Logger
	mu      sync.RWMutex
}

// NewRegistry creates a new module registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		modules: make(map[string]Module),
		order:   make([]string, 0),
		logger:  logger,
	}
}

// Register adds a module to the registry.
// Modules are registered in the order they are added.
func (r *Registry) Register(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := m.Name()
	if _, exists := r.modules[name]; exists {
		return fmt.Errorf("module %q already registered", name)
	}

	r.modules[name] = m
	r.order = append(r.order, name)
	r.logger.Info("module registered", "name", name, "version", m.Version())

	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[name]
	return m, ok
}

// List returns all registered modules in registration order.
func (r *Registry) List() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modules := make([]Module, 0, len(r.order))
	for _, name := range r.order {
		if m, ok := r.modules[name]; ok {
			modules = append(modules, m)
		}
	}
	return modules
}

// InitAll initializes all registered modules.
// Modules are initialized in registration order.
// Dependencies are checked before initialization.
func (r *Registry) InitAll(ctx *Context) error {
	r.mu.Lock()
	r.ctx = ctx
	r.mu.Unlock()

	if err := r.checkDependencies(); err != nil {
		return err
	}

	if err := r.runAllMigrations(ctx.DB); err != nil {
		return err
	}

	for _, name := range r.order {
		m, ok := r.modules[name]
		if !ok || m == nil {
			return fmt.Errorf("module %q not found in registry", name)
		}

		if err := m.Init(ctx); err != nil {
			return fmt.Errorf("initializing module %q: %w", name, err)
		}

		r.logger.Info("module initialized", "name", name)
	}

	return nil
}

// RegisterAllRoutes registers the public routes of every module.
func (r *Registry) RegisterAllRoutes(router chi.Router) {
	for _, m := range r.List() {
		m.RegisterRoutes(router)
	}
}

// ShutdownAll shuts down all modules in reverse registration order.
func (r *Registry) ShutdownAll() {
	modules := r.List()
	for i := len(modules) - 1; i >= 0; i-- {
		m := modules[i]
		if err := m.Shutdown(); err != nil {
			r.logger.Error("module shutdown failed", "name", m.Name(), "error", err)
		}
	}
}

// checkDependencies verifies that all module dependencies are registered.
func (r *Registry) checkDependencies() error {
	for _, name := range r.order {
		m, ok := r.modules[name]
		if !ok || m == nil {
			return fmt.Errorf("module %q not found in registry", name)
		}
		for _, dep := range m.Dependencies() {
			if _, ok := r.modules[dep]; !ok {
				return fmt.Errorf("module %q depends on %q which is not registered", name, dep)
			}
		}
	}
	return nil
}

// runAllMigrations applies the pending migrations of every module.
func (r *Registry) runAllMigrations(db *sql.DB) error {
	for _, name := range r.order {
		m := r.modules[name]
		for _, mig := range m.Migrations() {
			if err := mig.Up(db); err != nil {
				return fmt.Errorf("module %q migration %d: %w", name, mig.Version, err)
			}
		}
	}
	return nil
}
