package rally

import (
	"context"
	"fmt"
	"net/http"
)

// Get retrieves a single object by id
func (c *Client) Get(ctx context.Context, typeName, id string) (Object, error) {
	resp, err := c.execute(ctx, http.MethodGet, c.applyWorkspace(BuildRef(typeName, id), nil), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", Translate(typeName), id, err)
	}

	if resp.kind != envelopeNone {
		return nil, fmt.Errorf("%w: unexpected %s for get", ErrInvalidResponse, resp.kind)
	}

	obj, err := firstValue(resp.raw)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", Translate(typeName), id, err)
	}
	return obj, nil
}

// Create creates an object of typeName with the given fields and returns
// the created object
func (c *Client) Create(ctx context.Context, typeName string, fields map[string]any) (Object, error) {
	if fields == nil {
		fields = map[string]any{}
	}

	resp, err := c.execute(ctx, http.MethodPut, c.applyWorkspace(BuildRef(typeName, CreateID), nil), fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", Translate(typeName), err)
	}
	if resp.kind != envelopeCreate && resp.kind != envelopeOperation {
		return nil, fmt.Errorf("%w: unexpected %s for create", ErrInvalidResponse, resp.kind)
	}
	if resp.result.Object == nil {
		return nil, fmt.Errorf("%w: %s without Object for create", ErrInvalidResponse, resp.kind)
	}

	c.logger.Info().
		Str("type", Translate(typeName)).
		Str("ref", resp.result.Object.Ref()).
		Msg("Created object")
	return resp.result.Object, nil
}

// Update changes the given fields on an object and returns the updated object
func (c *Client) Update(ctx context.Context, typeName, id string, fields map[string]any) (Object, error) {
	if fields == nil {
		fields = map[string]any{}
	}

	resp, err := c.execute(ctx, http.MethodPost, c.applyWorkspace(BuildRef(typeName, id), nil), fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %s: %w", Translate(typeName), id, err)
	}
	if resp.kind != envelopeOperation {
		return nil, fmt.Errorf("%w: unexpected %s for update", ErrInvalidResponse, resp.kind)
	}
	if resp.result.Object == nil {
		return nil, fmt.Errorf("%w: %s without Object for update", ErrInvalidResponse, resp.kind)
	}

	c.logger.Info().
		Str("type", Translate(typeName)).
		Str("id", id).
		Msg("Updated object")
	return resp.result.Object, nil
}

// Delete deletes an object. The response body carries no data and is
// only checked for errors.
func (c *Client) Delete(ctx context.Context, typeName, id string) (bool, error) {
	if _, err := c.execute(ctx, http.MethodDelete, c.applyWorkspace(BuildRef(typeName, id), nil), nil); err != nil {
		return false, fmt.Errorf("failed to delete %s %s: %w", Translate(typeName), id, err)
	}

	c.logger.Info().
		Str("type", Translate(typeName)).
		Str("id", id).
		Msg("Deleted object")
	return true, nil
}
