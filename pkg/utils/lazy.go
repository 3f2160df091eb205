package utils

// Cell is a lazily computed, explicitly invalidated value. Each derived
// aggregate (placement maps, point lists, rank maps) is held in a Cell owned
// by its Race or Series, so invalidation after a structural change is a
// deterministic graph walk rather than scattered nil checks.
type Cell[T any] struct {
	value   *T
	compute func() T
}

func NewCell[T any](compute func() T) *Cell[T] {
	return &Cell[T]{compute: compute}
}

// Get returns the cached value, computing it on first use.
func (c *Cell[T]) Get() T {
	if c.value == nil {
		v := c.compute()
		c.value = &v
	}
	return *c.value
}

// Invalidate drops the cached value; the next Get recomputes.
func (c *Cell[T]) Invalidate() {
	c.value = nil
}

// Valid reports whether a value is currently cached.
func (c *Cell[T]) Valid() bool { return c.value != nil }
