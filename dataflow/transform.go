package dataflow

import "context"

// Map applies fn to every record. Partitioning is preserved.
func Map[T, U any](ctx context.Context, in *Collection[T], fn func(T) (U, error)) (*Collection[U], error) {
	out := make([][]U, len(in.parts))
	err := in.env.run(ctx, "map", len(in.parts), func(ctx context.Context, p int) error {
		src := in.parts[p]
		dst := make([]U, 0, len(src))
		for _, v := range src {
			u, err := fn(v)
			if err != nil {
				return err
			}
			dst = append(dst, u)
		}
		out[p] = dst
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Collection[U]{env: in.env, parts: out}, nil
}

// FlatMap calls fn for every record; fn emits zero or more results.
func FlatMap[T, U any](ctx context.Context, in *Collection[T], fn func(v T, emit func(U)) error) (*Collection[U], error) {
	out := make([][]U, len(in.parts))
	err := in.env.run(ctx, "flat-map", len(in.parts), func(ctx context.Context, p int) error {
		var dst []U
		emit := func(u U) { dst = append(dst, u) }
		for _, v := range in.parts[p] {
			if err := fn(v, emit); err != nil {
				return err
			}
		}
		out[p] = dst
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Collection[U]{env: in.env, parts: out}, nil
}

// Filter keeps the records for which keep returns true.
func Filter[T any](ctx context.Context, in *Collection[T], keep func(T) bool) (*Collection[T], error) {
	return FlatMap(ctx, in, func(v T, emit func(T)) error {
		if keep(v) {
			emit(v)
		}
		return nil
	})
}
