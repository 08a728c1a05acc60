package card

import (
	"context"
	"sync"

	"github.com/youruser/cardforge/internal/cards"
)

// Saved reports one card written by RenderAll.
type Saved struct {
	Card       cards.Card
	Path       string
	Unresolved int
}

// RenderAll builds and saves every card under outDir using up to workers
// goroutines. It stops at the first error and returns it. Saved cards are
// returned in input order.
func (b *Builder) RenderAll(ctx context.Context, cs []cards.Card, outDir string, workers int) ([]Saved, error) {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	saved := make([]Saved, len(cs))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := b.Build(cs[i])
				if err != nil {
					fail(err)
					continue
				}
				path, err := b.Save(outDir, res)
				if err != nil {
					fail(err)
					continue
				}
				saved[i] = Saved{Card: cs[i], Path: path, Unresolved: len(res.Unresolved)}
			}
		}()
	}

feed:
	for i := range cs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return saved, nil
}
