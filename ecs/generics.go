package ecs

import (
	"fmt"

	"github.com/milk9111/musicstrip/ecs/component"
)

// Add attaches value to e, replacing any previous value of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil {
		return fmt.Errorf("add %s: world is nil", kind.Name())
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("add %s: %w", kind.Name(), component.ErrNilComponent)
	}
	if !w.entities.isAlive(e) {
		return fmt.Errorf("add %s to %s: %w", kind.Name(), e, component.ErrEntityNotAlive)
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// Get returns the value of kind attached to e.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	raw := w.store(kind.ID(), false).Get(e)
	if raw == nil {
		return nil, false
	}
	value, ok := raw.(*T)
	return value, ok
}

// Has reports whether e carries a value of kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

// Remove detaches the value of kind from e.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

// Count returns how many entities carry kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	return w.store(kind.ID(), false).Len()
}
