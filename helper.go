// ----------------------------------------------------------------------------
// The MIT License
// ecs - Entity Component System core powered by Golang.
// Url: https://github.com/kestrel-ecs/ecs
// ----------------------------------------------------------------------------

package ecs

// AutoRemove is the convenience auto-removal run-system described in
// §6: it deletes T from every entity matching filter<T>().end() on
// every tick. It is the simplest possible RunSystem, provided as a
// building block rather than something every world needs to register.
type AutoRemove[T any] struct {
	filter *Filter
	pool   *Pool[T]
}

// NewAutoRemove builds the filter<T>().end() query once and returns a
// system that strips T from every match each Run.
func NewAutoRemove[T any](w *World) *AutoRemove[T] {
	return &AutoRemove[T]{
		filter: NewMaskBuilder[T](w).End(0),
		pool:   PoolOf[T](w),
	}
}

// SystemTypes declares RunSystem support only.
func (a *AutoRemove[T]) SystemTypes() SystemType {
	return RunSystemType
}

// Run deletes T from every entity the filter currently matches.
func (a *AutoRemove[T]) Run(*Scheduler) {
	a.filter.ForEach(func(e Entity) {
		a.pool.Del(e)
	})
}
