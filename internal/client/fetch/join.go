package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pair is the result of Join2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Join2 issues a and b concurrently and succeeds only when both do. The
// first failure fails the join and cancels the other request's context.
func Join2[A, B any](a Func[A], b Func[B]) Func[Pair[A, B]] {
	return func(ctx context.Context) (Pair[A, B], error) {
		var p Pair[A, B]

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			v, err := a(gctx)
			if err != nil {
				return err
			}
			p.First = v
			return nil
		})
		g.Go(func() error {
			v, err := b(gctx)
			if err != nil {
				return err
			}
			p.Second = v
			return nil
		})

		if err := g.Wait(); err != nil {
			return Pair[A, B]{}, err
		}
		return p, nil
	}
}
