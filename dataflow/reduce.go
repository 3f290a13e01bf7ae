package dataflow

import (
	"context"
	"math/bits"
)

// Indexed pairs a record with the identifier assigned by ZipWithUniqueID or
// ZipWithIndex.
type Indexed[T any] struct {
	ID    uint64
	Value T
}

// Reduce folds all records with fn. fn must be associative; partitions are
// folded in parallel and the partial results are folded in partition order.
// ok is false for an empty collection.
func Reduce[T any](ctx context.Context, in *Collection[T], fn func(a, b T) (T, error)) (result T, ok bool, err error) {
	type partial struct {
		v  T
		ok bool
	}
	partials := make([]partial, len(in.parts))
	err = in.env.run(ctx, "reduce", len(in.parts), func(ctx context.Context, p int) error {
		src := in.parts[p]
		if len(src) == 0 {
			return nil
		}
		acc := src[0]
		for _, v := range src[1:] {
			var err error
			if acc, err = fn(acc, v); err != nil {
				return err
			}
		}
		partials[p] = partial{v: acc, ok: true}
		return nil
	})
	if err != nil {
		return result, false, err
	}

	for _, pr := range partials {
		if !pr.ok {
			continue
		}
		if !ok {
			result, ok = pr.v, true
			continue
		}
		if result, err = fn(result, pr.v); err != nil {
			return result, false, err
		}
	}
	return result, ok, nil
}

// ZipWithUniqueID assigns every record an identifier that is unique within
// the collection without a global counter: the local index is shifted left
// by the number of bits needed for the partition number, which fills the
// low bits. IDs are not dense.
func ZipWithUniqueID[T any](ctx context.Context, in *Collection[T]) (*Collection[Indexed[T]], error) {
	shift := bits.Len(uint(len(in.parts) - 1))
	out := make([][]Indexed[T], len(in.parts))
	err := in.env.run(ctx, "zip-unique-id", len(in.parts), func(ctx context.Context, p int) error {
		src := in.parts[p]
		dst := make([]Indexed[T], len(src))
		for i, v := range src {
			dst[i] = Indexed[T]{ID: uint64(i)<<shift | uint64(p), Value: v}
		}
		out[p] = dst
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Collection[Indexed[T]]{env: in.env, parts: out}, nil
}

// ZipWithIndex assigns consecutive indexes 0..Count()-1 in collection order.
func ZipWithIndex[T any](ctx context.Context, in *Collection[T]) (*Collection[Indexed[T]], error) {
	offsets := make([]uint64, len(in.parts))
	var next uint64
	for p, part := range in.parts {
		offsets[p] = next
		next += uint64(len(part))
	}

	out := make([][]Indexed[T], len(in.parts))
	err := in.env.run(ctx, "zip-index", len(in.parts), func(ctx context.Context, p int) error {
		src := in.parts[p]
		dst := make([]Indexed[T], len(src))
		for i, v := range src {
			dst[i] = Indexed[T]{ID: offsets[p] + uint64(i), Value: v}
		}
		out[p] = dst
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Collection[Indexed[T]]{env: in.env, parts: out}, nil
}
