package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopsync-core/internal/domain"
)

const (
	// pageSize is the Admin API's maximum page size.
	pageSize = "250"

	// maxPages caps a single resource pull so a runaway cursor cannot loop
	// forever. 200 pages of 250 records is 50k records per resource per sync.
	maxPages = 200
)

// FetchAll retrieves the full record sequence for one resource path, following
// Link-header cursors until no rel="next" entry remains. Each call starts at
// page one; the sequence is not restartable mid-way. Records are returned in
// arrival order with numbers preserved as json.Number so large external ids
// survive decoding intact.
func (c *Client) FetchAll(ctx context.Context, path, resultKey string, params url.Values) ([]map[string]interface{}, error) {
	var records []map[string]interface{}
	pageInfo := ""

	for page := 1; ; page++ {
		if page > maxPages {
			return nil, &domain.APIError{
				Domain: c.shopDomain,
				Path:   path,
				Hint:   fmt.Sprintf("aborted after %d pages, cursor never terminated", maxPages),
			}
		}

		query := url.Values{}
		query.Set("limit", pageSize)
		if pageInfo == "" {
			// Filter parameters are only legal on the first request; cursor
			// requests accept limit and page_info alone.
			for k, vs := range params {
				for _, v := range vs {
					query.Add(k, v)
				}
			}
		} else {
			query.Set("page_info", pageInfo)
		}

		pageRecords, next, err := c.fetchPage(ctx, path, resultKey, query)
		if err != nil {
			return nil, err
		}
		records = append(records, pageRecords...)

		c.logger.Debug().
			Str("shop", c.shopDomain).
			Str("path", path).
			Int("page", page).
			Int("records", len(pageRecords)).
			Bool("has_next", next != "").
			Msg("Fetched resource page")

		if next == "" {
			return records, nil
		}
		pageInfo = next
	}
}

// fetchPage issues one bounded page request, retrying transient failures
// (transport errors, 429, 5xx) with exponential backoff. Client errors are
// returned immediately with an actionable hint.
func (c *Client) fetchPage(ctx context.Context, path, resultKey string, query url.Values) ([]map[string]interface{}, string, error) {
	var lastErr error
	backoff := c.retry.InitialBackoff

	attempts := c.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			c.logger.Warn().
				Str("shop", c.shopDomain).
				Str("path", path).
				Int("attempt", attempt).
				Msg("Retrying page fetch after transient failure")
			select {
			case <-ctx.Done():
				return nil, "", c.wrapTransportError(path, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
			if c.retry.MaxBackoff > 0 && backoff > c.retry.MaxBackoff {
				backoff = c.retry.MaxBackoff
			}
		}

		records, next, err := c.doPage(ctx, path, resultKey, query)
		if err == nil {
			return records, next, nil
		}
		lastErr = err
		if !isTransient(err) {
			return nil, "", err
		}
	}
	return nil, "", lastErr
}

func (c *Client) doPage(ctx context.Context, path, resultKey string, query url.Values) ([]map[string]interface{}, string, error) {
	reqURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set(accessTokenHeader, c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", c.wrapTransportError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &domain.APIError{
			Status: resp.StatusCode,
			Domain: c.shopDomain,
			Path:   path,
			Hint:   domain.HintForStatus(resp.StatusCode),
		}
	}

	var body map[string]interface{}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, "", &domain.APIError{
			Domain: c.shopDomain,
			Path:   path,
			Hint:   "response body is not valid JSON",
			Err:    err,
		}
	}

	rawList, _ := body[resultKey].([]interface{})
	records := make([]map[string]interface{}, 0, len(rawList))
	for _, raw := range rawList {
		if record, ok := raw.(map[string]interface{}); ok {
			records = append(records, record)
		}
	}

	return records, nextPageInfo(resp.Header.Get("Link")), nil
}

func (c *Client) wrapTransportError(path string, err error) error {
	return &domain.APIError{
		Domain: c.shopDomain,
		Path:   path,
		Hint:   "request did not complete, network error or timeout",
		Err:    err,
	}
}

// isTransient reports whether a page failure is worth another attempt within
// this sync: transport errors, rate limiting, and upstream 5xx.
func isTransient(err error) bool {
	if domain.IsFatalSyncError(err) {
		return false
	}
	status := domain.ErrorStatus(err)
	return status == 0 || status == http.StatusTooManyRequests || status >= 500
}

// nextPageInfo extracts the page_info cursor from the rel="next" entry of a
// Link response header, or "" when the sequence is exhausted.
func nextPageInfo(linkHeader string) string {
	for _, entry := range strings.Split(linkHeader, ",") {
		sections := strings.Split(entry, ";")
		if len(sections) < 2 {
			continue
		}
		isNext := false
		for _, param := range sections[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				isNext = true
				break
			}
		}
		if !isNext {
			continue
		}
		target := strings.Trim(strings.TrimSpace(sections[0]), "<>")
		u, err := url.Parse(target)
		if err != nil {
			continue
		}
		if cursor := u.Query().Get("page_info"); cursor != "" {
			return cursor
		}
	}
	return ""
}
