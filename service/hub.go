package service

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

type phase uint8

const (
	phaseRegistered phase = iota
	phaseInitialized
	phaseStarted
)

type entry struct {
	svc   Service
	phase phase
}

// Hub owns the services of one process and sequences their lifecycle
type Hub struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string // dependency order, resolved by InitAll
}

func NewHub() *Hub {
	return &Hub{entries: make(map[string]*entry)}
}

// Register adds services; names must be unique
func (h *Hub) Register(svcs ...Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, svc := range svcs {
		name := svc.Name()
		if _, dup := h.entries[name]; dup {
			return fmt.Errorf("service already registered: %s", name)
		}
		h.entries[name] = &entry{svc: svc}
		h.order = nil
	}
	return nil
}

// Get returns a registered service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entries[name]
	if !ok {
		return nil, false
	}
	return e.svc, true
}

// MustGet returns the named service as T, panicking when absent or of another type
func MustGet[T any](h *Hub, name string) T {
	svc, ok := h.Get(name)
	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// InitAll initializes every service after its dependencies
// args[name] is passed to that service's Init. A failure stops the
// services initialized so far, newest first
func (h *Hub) InitAll(args map[string][]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	order, err := h.resolve()
	if err != nil {
		return err
	}
	h.order = order

	for i, name := range order {
		e := h.entries[name]
		if err := e.svc.Init(args[name]...); err != nil {
			h.unwind(order[:i])
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		e.phase = phaseInitialized
	}
	return nil
}

// StartAll starts initialized services in dependency order, unwinding on failure
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		return fmt.Errorf("services not initialized")
	}
	for i, name := range h.order {
		e := h.entries[name]
		if err := e.svc.Start(); err != nil {
			h.unwind(h.order[:i])
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		e.phase = phaseStarted
	}
	return nil
}

// StopAll stops started services in reverse dependency order
// Stop errors are logged so every service gets its turn
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	var started []string
	for _, name := range h.order {
		if h.entries[name].phase == phaseStarted {
			started = append(started, name)
		}
	}
	h.unwind(started)
}

// unwind stops names newest first and returns them to the registered phase
func (h *Hub) unwind(names []string) {
	for i := len(names) - 1; i >= 0; i-- {
		e := h.entries[names[i]]
		if err := e.svc.Stop(); err != nil {
			log.Printf("Service %s stop: %v", names[i], err)
		}
		e.phase = phaseRegistered
	}
}

// Order returns the resolved dependency order, nil before InitAll
func (h *Hub) Order() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.order...)
}

// Names returns registered service names, sorted
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sortedNames()
}

func (h *Hub) sortedNames() []string {
	names := make([]string, 0, len(h.entries))
	for name := range h.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve orders services depth-first so each follows its dependencies
// Siblings are visited by name, making the order reproducible
func (h *Hub) resolve() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	mark := make(map[string]int, len(h.entries))
	order := make([]string, 0, len(h.entries))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch mark[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("circular dependency: %s -> %s", strings.Join(path, " -> "), name)
		}
		mark[name] = visiting
		path = append(path, name)

		deps := append([]string(nil), h.entries[name].svc.Dependencies()...)
		sort.Strings(deps)
		for _, dep := range deps {
			if _, ok := h.entries[dep]; !ok {
				return fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		mark[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range h.sortedNames() {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
