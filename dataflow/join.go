package dataflow

import "context"

type joinSide int

const (
	innerJoin joinSide = iota
	leftOuter
	rightOuter
)

// Join is an inner equi-join. fn is called for every pair of matching
// records; left records drive the output order.
func Join[L, R any, K comparable, O any](
	ctx context.Context,
	left *Collection[L], right *Collection[R],
	leftKey func(L) K, rightKey func(R) K,
	fn func(l L, r R) (O, error),
) (*Collection[O], error) {
	return join(ctx, innerJoin, left, right, leftKey, rightKey, func(l L, _ bool, r R, _ bool) (O, error) {
		return fn(l, r)
	})
}

// LeftOuterJoin joins like Join and additionally calls fn once, with
// ok == false and a zero right value, for every left record without a match.
func LeftOuterJoin[L, R any, K comparable, O any](
	ctx context.Context,
	left *Collection[L], right *Collection[R],
	leftKey func(L) K, rightKey func(R) K,
	fn func(l L, r R, ok bool) (O, error),
) (*Collection[O], error) {
	return join(ctx, leftOuter, left, right, leftKey, rightKey, func(l L, _ bool, r R, rok bool) (O, error) {
		return fn(l, r, rok)
	})
}

// RightOuterJoin joins like Join and additionally calls fn once, with
// ok == false and a zero left value, for every right record without a match.
func RightOuterJoin[L, R any, K comparable, O any](
	ctx context.Context,
	left *Collection[L], right *Collection[R],
	leftKey func(L) K, rightKey func(R) K,
	fn func(l L, ok bool, r R) (O, error),
) (*Collection[O], error) {
	return join(ctx, rightOuter, left, right, leftKey, rightKey, func(l L, lok bool, r R, _ bool) (O, error) {
		return fn(l, lok, r)
	})
}

func join[L, R any, K comparable, O any](
	ctx context.Context,
	side joinSide,
	left *Collection[L], right *Collection[R],
	leftKey func(L) K, rightKey func(R) K,
	fn func(l L, lok bool, r R, rok bool) (O, error),
) (*Collection[O], error) {
	env := left.env
	lb, err := shuffle(ctx, env, left, leftKey)
	if err != nil {
		return nil, err
	}
	rb, err := shuffle(ctx, env, right, rightKey)
	if err != nil {
		return nil, err
	}

	out := make([][]O, len(lb))
	err = env.run(ctx, "join", len(lb), func(ctx context.Context, q int) error {
		// Build on the right side, probe with the left side.
		table := make(map[K][]int, len(rb[q]))
		for i, r := range rb[q] {
			k := rightKey(r)
			table[k] = append(table[k], i)
		}

		var matched []bool
		if side == rightOuter {
			matched = make([]bool, len(rb[q]))
		}

		var dst []O
		var zeroL L
		var zeroR R
		for _, l := range lb[q] {
			idx, ok := table[leftKey(l)]
			if !ok {
				if side == leftOuter {
					o, err := fn(l, true, zeroR, false)
					if err != nil {
						return err
					}
					dst = append(dst, o)
				}
				continue
			}
			for _, i := range idx {
				if matched != nil {
					matched[i] = true
				}
				o, err := fn(l, true, rb[q][i], true)
				if err != nil {
					return err
				}
				dst = append(dst, o)
			}
		}

		if side == rightOuter {
			for i, r := range rb[q] {
				if matched[i] {
					continue
				}
				o, err := fn(zeroL, false, r, true)
				if err != nil {
					return err
				}
				dst = append(dst, o)
			}
		}

		out[q] = dst
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Collection[O]{env: env, parts: out}, nil
}
