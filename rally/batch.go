package rally

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// BatchDeleteResult contains the outcome of a DeleteMany call
type BatchDeleteResult struct {
	Requested  int
	Successful []string
	Err        error
}

// Failed reports whether any deletion failed
func (r BatchDeleteResult) Failed() bool {
	return r.Err != nil
}

// GetMany fetches several objects of the same type concurrently. Results
// are returned in the order of ids. The first failure cancels the rest.
func (c *Client) GetMany(ctx context.Context, typeName string, ids []string) ([]Object, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	objects := make([]Object, len(ids))
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			obj, err := c.Get(ctx, typeName, id)
			if err != nil {
				return err
			}
			objects[i] = obj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return objects, nil
}

// DeleteMany deletes several objects of the same type concurrently. Every
// id is attempted; failures are aggregated into the result's Err.
func (c *Client) DeleteMany(ctx context.Context, typeName string, ids []string) BatchDeleteResult {
	result := BatchDeleteResult{
		Requested: len(ids),
	}
	if len(ids) == 0 {
		return result
	}

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	var (
		mu      sync.Mutex
		errs    *multierror.Error
		deleted = make([]bool, len(ids))
	)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if _, err := c.Delete(ctx, typeName, id); err != nil {
				c.logger.Error().
					Err(err).
					Str("type", Translate(typeName)).
					Str("id", id).
					Msg("Failed to delete object")
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", id, err))
				mu.Unlock()
				return nil
			}
			deleted[i] = true
			return nil
		})
	}
	_ = g.Wait()

	for i, ok := range deleted {
		if ok {
			result.Successful = append(result.Successful, ids[i])
		}
	}
	result.Err = errs.ErrorOrNil()

	return result
}
