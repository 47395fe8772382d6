package services

import (
	"context"
)

// Page is one page of a paged list endpoint.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}

// PageFunc fetches the page identified by token ("" for the first page) holding at most size items.
type PageFunc[T any] func(ctx context.Context, token string, size int64) (Page[T], error)

// Paginate follows continuation tokens until the endpoint returns none or limit items were collected.
//
// A limit of zero or less collects every page. The result never exceeds limit.
// A token equal to the previous one ends the loop.
func Paginate[T any](ctx context.Context, limit int, fetch PageFunc[T]) ([]T, error) {
	var (
		items []T
		token string
	)

	for {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		size := maxPageSize
		if limit > 0 {
			size = min(limit-len(items), maxPageSize)
		}

		page, err := fetch(ctx, token, int64(size))
		if err != nil {
			return items, err
		}
		items = append(items, page.Items...)

		if limit > 0 && len(items) >= limit {
			return items[:limit], nil
		}
		if page.NextPageToken == "" || page.NextPageToken == token {
			return items, nil
		}
		token = page.NextPageToken
	}
}
