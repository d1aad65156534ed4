package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/barmotion/internal/dynamo"
)

var registry = map[string]func() dynamo.Integrator{
	"euler":      func() dynamo.Integrator { return NewEuler() },
	"semi-euler": func() dynamo.Integrator { return NewSemiImplicitEuler() },
	"rk4":        func() dynamo.Integrator { return NewRK4() },
}

// ByName returns a fresh integrator. Integrators hold scratch space, so
// callers that run concurrently need one each.
func ByName(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = "rk4"
	}
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return mk(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
