package rest

import (
	"context"
	"net/http"
	"net/url"

	courseclient "github.com/air846/course-client"
)

// Raw verb helpers for endpoints not covered by the typed services. Each
// issues one enveloped request through the full middleware chain and
// decodes the envelope's data into out (nil discards it).

// Get issues a GET with the params serialized as the query string.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, params, nil, out)
}

// Post issues a POST with body serialized as the JSON payload.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with body serialized as the JSON payload.
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE with the params serialized as the query string.
func (c *Client) Delete(ctx context.Context, path string, params url.Values, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, params, nil, out)
}

// Download issues a binary GET with the extended timeout, bypassing
// envelope unwrapping.
func (c *Client) Download(ctx context.Context, path string, params url.Values) (*courseclient.File, error) {
	return c.download(ctx, path, params)
}
