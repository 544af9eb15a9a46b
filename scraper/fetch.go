package scraper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/ysmood/gson"

	"github.com/bankfeed/hapoalim/models"
)

// The request bridge executes HTTP calls from inside the authenticated
// page via fetch(), never from an out-of-process client: the session is
// bound to browser-managed cookies and an anti-CSRF token only obtainable
// client-side. The bridge performs no retries — a failed call surfaces
// immediately.

const (
	xsrfCookieName = "XSRF-TOKEN"
	xsrfHeaderName = "X-XSRF-TOKEN"
)

const fetchGetJS = `(url) => fetch(url, {
	credentials: "include",
}).then((res) => {
	if (res.status === 204) {
		return null;
	}
	return res.json();
})`

const fetchPostJS = `(url, data, extraHeaders) => fetch(url, {
	method: "POST",
	body: JSON.stringify(data),
	credentials: "include",
	headers: Object.assign(
		{ "Content-Type": "application/x-www-form-urlencoded; charset=UTF-8" },
		extraHeaders,
	),
}).then((res) => {
	if (res.status === 204) {
		return null;
	}
	return res.json();
})`

// FetchGetWithinPage issues a credentialed GET inside the page context.
// A 204 response yields (nil, nil); any other success status decodes the
// body into T.
func FetchGetWithinPage[T any](ctx context.Context, pg Page, url string) (*T, error) {
	v, err := pg.Eval(ctx, fetchGetJS, url)
	if err != nil {
		return nil, err
	}
	return decodeEvalResult[T](v)
}

// FetchPostWithinPage issues a credentialed POST inside the page context.
// Caller headers are merged over the default form content type and win on
// key collision. A 204 response yields (nil, nil).
func FetchPostWithinPage[T any](ctx context.Context, pg Page, url string, body interface{}, extraHeaders map[string]string) (*T, error) {
	if body == nil {
		body = []interface{}{}
	}
	if extraHeaders == nil {
		extraHeaders = map[string]string{}
	}
	v, err := pg.Eval(ctx, fetchPostJS, url, body, extraHeaders)
	if err != nil {
		return nil, err
	}
	return decodeEvalResult[T](v)
}

// FetchTransactionsWithinPage calls the transactions endpoint with the
// header set the backend requires: the session's XSRF token (omitted when
// the cookie is absent), a fresh per-request correlation id, and the
// logical page identifier used for request attribution.
func FetchTransactionsWithinPage(ctx context.Context, pg Page, url, pageID string) (*models.RawTransactionsResult, error) {
	headers, err := transactionsHeaders(ctx, pg, pageID)
	if err != nil {
		return nil, err
	}
	return FetchPostWithinPage[models.RawTransactionsResult](ctx, pg, url, []interface{}{}, headers)
}

func transactionsHeaders(ctx context.Context, pg Page, pageID string) (map[string]string, error) {
	cookies, err := pg.Cookies(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"pageUuid":     pageID,
		"uuid":         uuid.NewString(),
		"Content-Type": "application/json;charset=UTF-8",
	}
	for _, c := range cookies {
		if c.Name == xsrfCookieName {
			headers[xsrfHeaderName] = c.Value
			break
		}
	}
	return headers, nil
}

// decodeEvalResult maps the in-page fetch result onto Go types: a JS null
// (the 204 path) becomes a nil pointer, anything else is decoded as T.
func decodeEvalResult[T any](v gson.JSON) (*T, error) {
	if v.Nil() {
		return nil, nil
	}
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode eval result: %w", err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return &out, nil
}
