package dataflow

import "slices"

// Collection is an immutable, partitioned list of records.
type Collection[T any] struct {
	env   *Env
	parts [][]T
}

// FromSlice distributes items over Env.Parallelism() partitions in contiguous
// chunks, so Collect returns them in their original order.
func FromSlice[T any](env *Env, items []T) *Collection[T] {
	n := env.parallelism
	parts := make([][]T, n)
	chunk := (len(items) + n - 1) / n
	for p := range n {
		lo := min(p*chunk, len(items))
		hi := min(lo+chunk, len(items))
		parts[p] = slices.Clone(items[lo:hi])
	}
	return &Collection[T]{env: env, parts: parts}
}

// FromPartitions wraps pre-partitioned data. The slices are copied.
func FromPartitions[T any](env *Env, parts ...[]T) *Collection[T] {
	cp := make([][]T, len(parts))
	for i, p := range parts {
		cp[i] = slices.Clone(p)
	}
	return &Collection[T]{env: env, parts: cp}
}

// Empty returns a collection without records.
func Empty[T any](env *Env) *Collection[T] {
	return &Collection[T]{env: env, parts: [][]T{nil}}
}

// Env returns the environment the collection belongs to.
func (c *Collection[T]) Env() *Env {
	return c.env
}

// NumPartitions returns the number of partitions.
func (c *Collection[T]) NumPartitions() int {
	return len(c.parts)
}

// Partition returns a copy of partition i.
func (c *Collection[T]) Partition(i int) []T {
	return slices.Clone(c.parts[i])
}

// Count returns the number of records.
func (c *Collection[T]) Count() int {
	n := 0
	for _, p := range c.parts {
		n += len(p)
	}
	return n
}

// Collect returns all records, partition by partition.
func (c *Collection[T]) Collect() []T {
	out := make([]T, 0, c.Count())
	for _, p := range c.parts {
		out = append(out, p...)
	}
	return out
}

// Union concatenates the partitions of the given collections.
// All collections must belong to the same Env.
func Union[T any](first *Collection[T], rest ...*Collection[T]) *Collection[T] {
	parts := slices.Clone(first.parts)
	for _, c := range rest {
		parts = append(parts, c.parts...)
	}
	return &Collection[T]{env: first.env, parts: parts}
}
