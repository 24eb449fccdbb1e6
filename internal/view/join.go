package view

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Pair[A, B any] struct {
	First  A
	Second B
}

// Join runs two fetches concurrently and resolves once both finish. If either
// fails the join fails and the other request is cancelled.
func Join[A, B any](fa Fetch[A], fb Fetch[B]) Fetch[Pair[A, B]] {
	return func(ctx context.Context) (Pair[A, B], error) {
		var p Pair[A, B]
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			v, err := fa(ctx)
			p.First = v
			return err
		})
		g.Go(func() error {
			v, err := fb(ctx)
			p.Second = v
			return err
		})
		if err := g.Wait(); err != nil {
			return Pair[A, B]{}, err
		}
		return p, nil
	}
}
