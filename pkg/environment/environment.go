// Package environment implements the lexically-scoped variable binding
// stack used by pkg/evaluator.
//
// An Environment is a stack of scopes, each a name→value map. The
// innermost scope is the top of the stack; lookup and assignment search
// from innermost to outermost. This mirrors smog's symbol-table handling in
// pkg/compiler, generalized from smog's single flat local-variable array
// into a nested scope stack so blocks and function calls can each open
// their own scope.
package environment

import "fmt"

// Value is the runtime value type stored in an Environment. It is defined
// here (rather than imported from pkg/evaluator) to keep this package
// leaf-level and free of a dependency on the evaluator; pkg/evaluator
// aliases its own Value type to this one.
type Value interface{}

// RuntimeError reports a failed lookup or assignment: an undefined
// variable. It carries no line number: Environment itself is
// line-agnostic, and the caller (the evaluator), which has access to the
// offending token, wraps the message in its own error with the line.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// Environment is a stack of scopes. The zero value is not usable; call
// New.
//
// Design note: new children are created by snapshotting (copying) the
// parent's scope stack by value, not by pointing back at a shared parent.
// This matches the original prototype's `Environment::new_child`
// (src/environment.rs), which clones the entire stack of maps. The
// consequence, preserved deliberately here, is that a nested function's
// captured environment is a value-copy snapshot: it sees the outer scope's
// bindings as they existed at closure-creation time, and will not observe a
// later mutation of an outer variable from outside the closure. A
// parent-pointer chain would give proper share-the-cell closures instead;
// this project keeps the original's snapshot behavior.
type Environment struct {
	stack []map[string]Value
}

// New returns an Environment with a single (global) scope.
func New() *Environment {
	return &Environment{stack: []map[string]Value{make(map[string]Value)}}
}

// Child returns a new Environment that snapshots env's current scope stack
// and pushes one fresh scope on top of the copy. env itself is left
// unmodified, and so is every value it currently holds: each scope map is
// copied entry-by-entry (a Go map is a reference type, so copying the
// slice of maps alone would leave the snapshot aliasing the original's
// storage — the Rust prototype's `HashMap::clone()` performs the deeper
// copy this is matching). This is the operation Block and Call use to open
// a nested scope that inherits visibility into all enclosing scopes;
// function declaration captures its environment with Snapshot instead.
func (env *Environment) Child() *Environment {
	snapshot := env.snapshotScopes()
	snapshot = append(snapshot, make(map[string]Value))
	return &Environment{stack: snapshot}
}

// Snapshot returns a copy of env's current scope stack with no additional
// scope pushed — used to freeze a function's defining environment at
// declaration time, independent of any scope Child() will later push for
// the call itself.
func (env *Environment) Snapshot() *Environment {
	return &Environment{stack: env.snapshotScopes()}
}

func (env *Environment) snapshotScopes() []map[string]Value {
	snapshot := make([]map[string]Value, len(env.stack))
	for i, scope := range env.stack {
		cloned := make(map[string]Value, len(scope))
		for k, v := range scope {
			cloned[k] = v
		}
		snapshot[i] = cloned
	}
	return snapshot
}

// Push opens a new, empty scope on top of env in place, for a caller that
// wants to extend the same Environment value rather than branch off a
// child.
func (env *Environment) Push() {
	env.stack = append(env.stack, make(map[string]Value))
}

// Pop discards the innermost scope. It must never be called when only the
// global scope remains; callers are expected to pair every Push with
// exactly one Pop along every exit path, including error and return
// propagation.
func (env *Environment) Pop() {
	if len(env.stack) <= 1 {
		panic("environment: cannot pop the global scope")
	}
	env.stack = env.stack[:len(env.stack)-1]
}

// Define inserts or overwrites name in the innermost scope, shadowing any
// outer binding of the same name silently.
func (env *Environment) Define(name string, value Value) {
	env.stack[len(env.stack)-1][name] = value
}

// Get searches innermost-to-outermost for name and returns its value. It
// fails if name is bound in no visible scope.
func (env *Environment) Get(name string) (Value, error) {
	for i := len(env.stack) - 1; i >= 0; i-- {
		if v, ok := env.stack[i][name]; ok {
			return v, nil
		}
	}
	return nil, &RuntimeError{Message: fmt.Sprintf("Undefined variable '%s'", name)}
}

// Assign searches innermost-to-outermost for name and overwrites it in the
// first scope where it is already bound. It fails if name is bound in no
// visible scope — assignment never creates a new binding.
func (env *Environment) Assign(name string, value Value) error {
	for i := len(env.stack) - 1; i >= 0; i-- {
		if _, ok := env.stack[i][name]; ok {
			env.stack[i][name] = value
			return nil
		}
	}
	return &RuntimeError{Message: fmt.Sprintf("Undefined variable '%s'", name)}
}
