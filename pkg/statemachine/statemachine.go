// Package statemachine drives entities through state functions in the style
// of Rob Pike's lexer: every state does its work and returns the next state,
// and a nil state stops the machine.
package statemachine

// StateFn is a state of entity T.
type StateFn[T any] func(*T) StateFn[T]

// StateMachine steps an entity through its states. It is not safe for
// concurrent use; an entity is driven by a single goroutine.
type StateMachine[T any] struct {
	entity  *T
	stateFn StateFn[T]
	steps   int
}

// New creates a machine for entity parked on initial.
func New[T any](entity *T, initial StateFn[T]) *StateMachine[T] {
	return &StateMachine[T]{
		entity:  entity,
		stateFn: initial,
	}
}

// Step runs the current state once and moves to the state it returns. It
// reports false when the machine was already stopped.
func (sm *StateMachine[T]) Step() bool {
	if sm.stateFn == nil {
		return false
	}
	sm.stateFn = sm.stateFn(sm.entity)
	sm.steps++
	return true
}

// Run steps the machine until a state returns nil.
func (sm *StateMachine[T]) Run() {
	for sm.Step() {
	}
}

// Done reports whether the machine has stopped.
func (sm *StateMachine[T]) Done() bool {
	return sm.stateFn == nil
}

// Steps returns the number of states executed so far.
func (sm *StateMachine[T]) Steps() int {
	return sm.steps
}

// SetState parks the machine on stateFn without running it.
func (sm *StateMachine[T]) SetState(stateFn StateFn[T]) {
	sm.stateFn = stateFn
}
