package dispatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aquaa/alphamath/internal/solver"
)

// ExitKey is the menu key that leaves the menu.
const ExitKey = "0"

// ErrExit is returned by Lookup for the exit key.
var ErrExit = errors.New("exit requested")

// UnknownSolverError is returned for a choice that matches no menu key or
// solver name.
type UnknownSolverError struct {
	Choice string
}

func (e *UnknownSolverError) Error() string {
	return fmt.Sprintf("invalid choice %q", e.Choice)
}

// Entry is one line of the menu.
type Entry struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Usage  string `json:"usage"`
	Sample string `json:"example"`
}

// Registry maps menu keys and names to solvers.
type Registry struct {
	solvers []solver.Solver
	byName  map[string]solver.Solver
}

// NewRegistry registers solvers in menu order; the first gets key "1".
// Duplicate names are an error.
func NewRegistry(solvers ...solver.Solver) (*Registry, error) {
	r := &Registry{byName: make(map[string]solver.Solver, len(solvers))}
	for _, s := range solvers {
		name := strings.ToLower(s.Name())
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("duplicate solver %q", name)
		}
		r.byName[name] = s
		r.solvers = append(r.solvers, s)
	}
	return r, nil
}

// Lookup resolves a menu key ("1".."9") or a solver name, case-insensitively.
func (r *Registry) Lookup(choice string) (solver.Solver, error) {
	choice = strings.ToLower(strings.TrimSpace(choice))
	if choice == ExitKey || choice == "exit" {
		return nil, ErrExit
	}
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(r.solvers) {
			return r.solvers[n-1], nil
		}
		return nil, &UnknownSolverError{Choice: choice}
	}
	if s, ok := r.byName[choice]; ok {
		return s, nil
	}
	return nil, &UnknownSolverError{Choice: choice}
}

// Entries lists the menu in key order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.solvers))
	for i, s := range r.solvers {
		out[i] = Entry{
			Key:    strconv.Itoa(i + 1),
			Name:   s.Name(),
			Title:  s.Title(),
			Usage:  s.Usage(),
			Sample: s.Example(),
		}
	}
	return out
}

// Menu renders the numbered menu.
func (r *Registry) Menu() string {
	var b strings.Builder
	b.WriteString("📚 Choose a solver:\n")
	for _, e := range r.Entries() {
		fmt.Fprintf(&b, "%s. %s (%s)\n", e.Key, e.Title, e.Name)
	}
	fmt.Fprintf(&b, "%s. Exit\n", ExitKey)
	return b.String()
}
