// Package formula holds the named step functions ("EC formulas") that drive
// the chaotic iteration. Formulas are plain password.StepFunc values, so a
// new one can be registered without touching the pipeline.
package formula

import (
	"sort"
	"sync"

	"ecpass/domain/core"
	"ecpass/domain/password"
)

// Default is the formula used when none is configured.
const Default = "turingbot-cos"

// Formula describes one registered step function.
type Formula struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Step        password.StepFunc `json:"-"`
}

var (
	mu       sync.RWMutex
	registry = map[string]Formula{}
)

func init() {
	Register(Formula{
		Name:        "turingbot",
		Description: "evolved tan/atanh expression; collapses into a shared cycle, few distinct outputs",
		Step:        TuringBot,
	})
	Register(Formula{
		Name:        "turingbot-cos",
		Description: "cos/cosh/atanh expression, bounded by the outer cos",
		Step:        TuringBotCos,
	})
	Register(Formula{
		Name:        "logistic",
		Description: "logistic map with r=3.99",
		Step:        Logistic,
	})
}

// Register adds or replaces a formula. It panics on an empty name or nil step.
func Register(f Formula) {
	if f.Name == "" || f.Step == nil {
		panic("formula: Register requires a name and a step function")
	}
	mu.Lock()
	defer mu.Unlock()
	registry[f.Name] = f
}

// Lookup returns the step function registered under name.
func Lookup(name string) (password.StepFunc, error) {
	f, err := Get(name)
	if err != nil {
		return nil, err
	}
	return f.Step, nil
}

// Get returns the full registry entry for name.
func Get(name string) (Formula, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return Formula{}, core.NewUnknownFormulaError(name)
	}
	return f, nil
}

// Names lists registered formula names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered formula sorted by name.
func All() []Formula {
	names := Names()
	out := make([]Formula, 0, len(names))
	mu.RLock()
	defer mu.RUnlock()
	for _, n := range names {
		out = append(out, registry[n])
	}
	return out
}
