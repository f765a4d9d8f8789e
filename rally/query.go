package rally

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// PageSize is the number of records requested per find page
const PageSize = 100

// FindOption configures a Find call.
type FindOption func(*findOptions)

type findOptions struct {
	order string
	fetch bool
}

// WithOrder sorts results server-side. The value is passed verbatim to
// the Rally query language, e.g. "FormattedID desc".
func WithOrder(order string) FindOption {
	return func(o *findOptions) {
		o.order = order
	}
}

// WithFetch controls whether full objects or only references are returned.
// Full objects are fetched by default.
func WithFetch(fetch bool) FindOption {
	return func(o *findOptions) {
		o.fetch = fetch
	}
}

// hasMorePages reports whether records exist beyond the page starting at
// start. start is 1-based.
func hasMorePages(totalCount, start, pageSize int) bool {
	return totalCount > start+pageSize-1
}

// Find runs a Rally query against typeName and returns every matching
// object, following pagination until the result set is exhausted. A
// failed page aborts the whole find.
func (c *Client) Find(ctx context.Context, typeName, query string, opts ...FindOption) ([]Object, error) {
	o := findOptions{fetch: true}
	for _, opt := range opts {
		opt(&o)
	}

	objectType := Translate(typeName)
	params := url.Values{}
	params.Set("query", query)
	params.Set("fetch", strconv.FormatBool(o.fetch))
	params.Set("pagesize", strconv.Itoa(PageSize))
	if o.order != "" {
		params.Set("order", o.order)
	}

	var results []Object
	for start, more := 1, true; more; start += PageSize {
		params.Set("start", strconv.Itoa(start))

		resp, err := c.execute(ctx, http.MethodGet, c.applyWorkspace(objectType+".js", params), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to find %s: %w", objectType, err)
		}
		if resp.kind != envelopeQuery {
			return nil, fmt.Errorf("%w: expected QueryResult, got %s", ErrInvalidResponse, resp.kind)
		}

		results = append(results, resp.result.Results...)
		more = hasMorePages(resp.result.TotalResultCount, start, PageSize)

		c.logger.Debug().
			Str("type", objectType).
			Int("start", start).
			Int("count", len(resp.result.Results)).
			Int("total", resp.result.TotalResultCount).
			Msg("Retrieved page from Rally")
	}

	return results, nil
}
