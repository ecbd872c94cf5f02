package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"gridnerd/internal/grid"
	"gridnerd/internal/logging"
)

// Fact is a single Datalog atom in the kernel's EDB.
type Fact struct {
	Predicate string
	Args      []int
}

// String returns the Datalog source representation of the fact.
func (f Fact) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = fmt.Sprintf("%d", a)
	}
	return fmt.Sprintf("%s(%s).", f.Predicate, strings.Join(args, ", "))
}

// defaultSchemas declares the mirrored predicates.
const defaultSchemas = `
Decl cell(X, Y).
Decl home(X, Y).
Decl adjacent(X1, Y1, X2, Y2).
Decl visited(X, Y).
Decl safe(X, Y).
Decl breeze(X, Y).
Decl no_breeze(X, Y).
Decl stench(X, Y).
Decl no_stench(X, Y).
Decl glitter(X, Y).
Decl gold(X, Y).
Decl pit(X, Y).
Decl wumpus(X, Y).
Decl no_pit(X, Y).
Decl no_wumpus(X, Y).
Decl hazard(X, Y).
Decl frontier(X, Y).
Decl risky(X, Y).
Decl reachable(X, Y).
`

// defaultRules derive the diagnostic predicates. They restate knowledge the
// typed chainer already holds; nothing here feeds back into the policy.
const defaultRules = `
hazard(X, Y) :- pit(X, Y).
hazard(X, Y) :- wumpus(X, Y).

frontier(X, Y) :- safe(X, Y), !visited(X, Y).

risky(X, Y) :- cell(X, Y), !safe(X, Y), !hazard(X, Y).

reachable(X, Y) :- home(X, Y).
reachable(X, Y) :- reachable(X0, Y0), adjacent(X0, Y0, X, Y), safe(X, Y).
`

// Kernel mirrors the agent's knowledge into a google/mangle program so it can
// be queried as Datalog and extended with user rules.
type Kernel struct {
	mu          sync.RWMutex
	facts       []Fact
	store       factstore.FactStore
	programInfo *analysis.ProgramInfo
	schemas     string
	rules       string
	userRules   string
	initialized bool
}

// NewKernel creates a kernel with the built-in grid schema and rules.
func NewKernel() *Kernel {
	return &Kernel{
		store:   factstore.NewSimpleInMemoryStore(),
		schemas: defaultSchemas,
		rules:   defaultRules,
	}
}

// SetUserRules replaces the user rule fragment appended after the built-in
// rules. The next Load re-evaluates with the new program.
func (k *Kernel) SetUserRules(rules string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.userRules = rules
}

// Load replaces the EDB with the given facts and evaluates the program to a
// fixed point.
func (k *Kernel) Load(facts []Fact) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.facts = append(k.facts[:0], facts...)
	return k.rebuild()
}

// rebuild reconstructs the full program text (schemas, EDB, rules), parses
// and analyzes it, then evaluates to fixpoint into a fresh store.
func (k *Kernel) rebuild() error {
	var sb strings.Builder
	sb.WriteString(k.schemas)
	sb.WriteString("\n")
	for _, f := range k.facts {
		sb.WriteString(f.String())
		sb.WriteString("\n")
	}
	sb.WriteString(k.rules)
	if k.userRules != "" {
		sb.WriteString("\n")
		sb.WriteString(k.userRules)
	}

	parsed, err := parse.Unit(strings.NewReader(sb.String()))
	if err != nil {
		return fmt.Errorf("failed to parse kernel program: %w", err)
	}

	programInfo, err := analysis.AnalyzeOneUnit(parsed, nil)
	if err != nil {
		return fmt.Errorf("failed to analyze kernel program: %w", err)
	}
	k.programInfo = programInfo

	k.store = factstore.NewSimpleInMemoryStore()
	if _, err := engine.EvalProgramWithStats(programInfo, k.store); err != nil {
		return fmt.Errorf("failed to evaluate kernel program: %w", err)
	}

	k.initialized = true
	logging.KernelDebug("kernel rebuilt: %d edb facts", len(k.facts))
	return nil
}

// Query returns all facts of the given predicate, EDB or derived, in
// deterministic order.
func (k *Kernel) Query(predicate string) ([]Fact, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if !k.initialized {
		return nil, fmt.Errorf("kernel not initialized; load facts first")
	}

	var results []Fact
	for pred := range k.programInfo.Decls {
		if pred.Symbol != predicate {
			continue
		}
		err := k.store.GetFacts(ast.NewQuery(pred), func(a ast.Atom) error {
			results = append(results, atomToFact(a))
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Slice(results, func(i, j int) bool {
			return lessArgs(results[i].Args, results[j].Args)
		})
		return results, nil
	}
	return nil, fmt.Errorf("predicate %s is not declared", predicate)
}

// Predicates lists the declared predicate names.
func (k *Kernel) Predicates() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if k.programInfo == nil {
		return nil
	}
	names := make([]string, 0, len(k.programInfo.Decls))
	for pred := range k.programInfo.Decls {
		names = append(names, pred.Symbol)
	}
	sort.Strings(names)
	return names
}

// atomToFact converts a Mangle atom back into a Fact. Non-numeric terms are
// not produced by the grid schema; they map to zero.
func atomToFact(a ast.Atom) Fact {
	args := make([]int, len(a.Args))
	for i, term := range a.Args {
		if c, ok := term.(ast.Constant); ok && c.Type == ast.NumberType {
			args[i] = int(c.NumValue)
		}
	}
	return Fact{Predicate: a.Predicate.Symbol, Args: args}
}

func lessArgs(a, b []int) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Export snapshots the engine's knowledge and the grid topology as kernel
// facts. The home coordinate is supplied by the caller (it is policy state,
// not knowledge).
func (e *Engine) Export(home grid.Coord) []Fact {
	var facts []Fact

	for y := 1; y <= e.height; y++ {
		for x := 1; x <= e.width; x++ {
			facts = append(facts, Fact{Predicate: "cell", Args: []int{x, y}})
			for _, d := range []grid.Coord{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
				nx, ny := x+d.X, y+d.Y
				if nx >= 1 && nx <= e.width && ny >= 1 && ny <= e.height {
					facts = append(facts, Fact{Predicate: "adjacent", Args: []int{x, y, nx, ny}})
				}
			}
		}
	}
	facts = append(facts, Fact{Predicate: "home", Args: []int{home.X, home.Y}})

	for _, p := range e.facts.All() {
		facts = append(facts, Fact{
			Predicate: p.Kind.String(),
			Args:      []int{p.Cell.X, p.Cell.Y},
		})
	}
	return facts
}
