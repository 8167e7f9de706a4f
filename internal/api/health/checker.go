package health

import (
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

type Checkable interface {
	HealthCheck() error
}

// CheckFunc adapts a plain function to Checkable.
type CheckFunc func() error

func (f CheckFunc) HealthCheck() error {
	return f()
}

type Status struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type Response struct {
	Ok bool `json:"ok"`
	// Map of service/component name to its status
	Statuses map[string]Status `json:"statuses"`
}

type Map struct {
	statuses  map[string]Status
	overallOk bool
	mu        *sync.Mutex
}

func NewMap() *Map {
	return &Map{
		statuses:  make(map[string]Status),
		overallOk: true,
		mu:        &sync.Mutex{},
	}
}

func (s *Map) Set(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		s.statuses[name] = Status{Ok: true}
		return
	}

	s.statuses[name] = Status{Ok: false, Error: err.Error()}
	s.overallOk = false
}

func (s *Map) Collect() Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]Status, len(s.statuses))
	for k, v := range s.statuses {
		copied[k] = v
	}

	return Response{
		Ok:       s.overallOk,
		Statuses: copied,
	}
}

// Checker runs the registered component checks concurrently.
// Concurrent callers share a single in-flight check.
type Checker struct {
	components map[string]Checkable
	rg         *singleflight.Group
}

func NewChecker(components map[string]Checkable) *Checker {
	return &Checker{
		components: components,
		rg:         &singleflight.Group{},
	}
}

func (h *Checker) Components() []string {
	names := make([]string, 0, len(h.components))
	for name := range h.components {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (h *Checker) Check() Response {
	response, _, _ := h.rg.Do("health_check", func() (interface{}, error) {
		return h.check(), nil
	})

	return response.(Response)
}

func (h *Checker) check() Response {
	var (
		wg          sync.WaitGroup
		statusesMap = NewMap()
	)

	wg.Add(len(h.components))
	for name, component := range h.components {
		go func(name string, component Checkable) {
			defer wg.Done()
			statusesMap.Set(name, component.HealthCheck())
		}(name, component)
	}
	wg.Wait()

	return statusesMap.Collect()
}
