package dataflow

import "context"

// KeyCount is the result record of CountByKey.
type KeyCount[K comparable] struct {
	Key   K
	Count int64
}

// Keep selects which record DistinctBy retains for a key.
type Keep int

const (
	// KeepFirst retains the first record in collection order.
	KeepFirst Keep = iota
	// KeepLast retains the last record in collection order.
	KeepLast
)

// shuffle hash-partitions in by key into env.parallelism buckets. Records
// keep their collection order inside a bucket. Both sides of a join shuffle
// with the same env so equal keys land in the same bucket whatever Env the
// inputs were created on.
func shuffle[T any, K comparable](ctx context.Context, env *Env, in *Collection[T], key func(T) K) ([][]T, error) {
	n := env.parallelism

	// Stage 1: every source partition splits itself.
	local := make([][][]T, len(in.parts))
	err := env.run(ctx, "shuffle-write", len(in.parts), func(ctx context.Context, p int) error {
		buckets := make([][]T, n)
		for _, v := range in.parts[p] {
			q := partitionOf(env.seed, key(v), n)
			buckets[q] = append(buckets[q], v)
		}
		local[p] = buckets
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 2: every target bucket concatenates its pieces in source order.
	out := make([][]T, n)
	err = env.run(ctx, "shuffle-read", n, func(ctx context.Context, q int) error {
		size := 0
		for p := range local {
			size += len(local[p][q])
		}
		bucket := make([]T, 0, size)
		for p := range local {
			bucket = append(bucket, local[p][q]...)
		}
		out[q] = bucket
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GroupReduce groups records by key and calls fn once per group. The group
// slice holds the records in collection order. Output partitions hold the
// groups in order of their first record.
func GroupReduce[T any, K comparable, U any](ctx context.Context, in *Collection[T], key func(T) K, fn func(k K, group []T) (U, error)) (*Collection[U], error) {
	buckets, err := shuffle(ctx, in.env, in, key)
	if err != nil {
		return nil, err
	}

	out := make([][]U, len(buckets))
	err = in.env.run(ctx, "group-reduce", len(buckets), func(ctx context.Context, q int) error {
		groups := make(map[K][]T)
		var order []K
		for _, v := range buckets[q] {
			k := key(v)
			g, ok := groups[k]
			if !ok {
				order = append(order, k)
			}
			groups[k] = append(g, v)
		}
		dst := make([]U, 0, len(order))
		for _, k := range order {
			u, err := fn(k, groups[k])
			if err != nil {
				return err
			}
			dst = append(dst, u)
		}
		out[q] = dst
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Collection[U]{env: in.env, parts: out}, nil
}

// DistinctBy keeps one record per key, chosen by keep.
func DistinctBy[T any, K comparable](ctx context.Context, in *Collection[T], key func(T) K, keep Keep) (*Collection[T], error) {
	return GroupReduce(ctx, in, key, func(_ K, group []T) (T, error) {
		if keep == KeepLast {
			return group[len(group)-1], nil
		}
		return group[0], nil
	})
}

// CountByKey counts the records per key. Counts are pre-aggregated inside
// each source partition before the shuffle.
func CountByKey[T any, K comparable](ctx context.Context, in *Collection[T], key func(T) K) (*Collection[KeyCount[K]], error) {
	partials := make([][]KeyCount[K], len(in.parts))
	err := in.env.run(ctx, "count-combine", len(in.parts), func(ctx context.Context, p int) error {
		counts := make(map[K]int64)
		var order []K
		for _, v := range in.parts[p] {
			k := key(v)
			if _, ok := counts[k]; !ok {
				order = append(order, k)
			}
			counts[k]++
		}
		dst := make([]KeyCount[K], 0, len(order))
		for _, k := range order {
			dst = append(dst, KeyCount[K]{Key: k, Count: counts[k]})
		}
		partials[p] = dst
		return nil
	})
	if err != nil {
		return nil, err
	}

	combined := &Collection[KeyCount[K]]{env: in.env, parts: partials}
	return GroupReduce(ctx, combined, func(kc KeyCount[K]) K { return kc.Key }, func(k K, group []KeyCount[K]) (KeyCount[K], error) {
		var total int64
		for _, kc := range group {
			total += kc.Count
		}
		return KeyCount[K]{Key: k, Count: total}, nil
	})
}
