package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"portfolio/internal/metrics"
)

const (
	singleObjectMediaType = "application/vnd.pgrst.object+json"
	noRowsCode            = "PGRST116"
	// invalid_text_representation, e.g. a malformed uuid in a filter.
	invalidTextCode       = "22P02"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Query is a PostgREST request under construction. Builder methods mutate
// and return the receiver.
type Query struct {
	client *Client
	table  string
	params url.Values
	orders []string
	single bool
}

// Select sets the column list, embedded relations included, e.g.
// "id,title,tags(id,name)". Whitespace is dropped.
func (q *Query) Select(columns string) *Query {
	q.params.Set("select", strings.Join(strings.Fields(columns), ""))
	return q
}

func (q *Query) Eq(column string, value any) *Query {
	q.params.Add(column, "eq."+formatValue(value))
	return q
}

func (q *Query) In(column string, values []string) *Query {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, `"`+strings.ReplaceAll(v, `"`, `\"`)+`"`)
	}
	q.params.Add(column, "in.("+strings.Join(quoted, ",")+")")
	return q
}

// Order appends a sort key. Calls chain into a multi-key sort.
func (q *Query) Order(column string, dir Direction, nullsFirst ...bool) *Query {
	key := column + ".asc"
	if dir == Descending {
		key = column + ".desc"
	}
	if len(nullsFirst) > 0 {
		if nullsFirst[0] {
			key += ".nullsfirst"
		} else {
			key += ".nullslast"
		}
	}
	q.orders = append(q.orders, key)
	return q
}

// Single asks for exactly one row; Execute returns ErrNoRows when none match.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

func (q *Query) Encode() string {
	params := url.Values{}
	for k, v := range q.params {
		params[k] = append([]string(nil), v...)
	}
	if len(q.orders) > 0 {
		params.Set("order", strings.Join(q.orders, ","))
	}
	return params.Encode()
}

func (q *Query) Execute(ctx context.Context, dst any) error {
	const op = "supabase.Query.Execute"

	c := q.client

	if !c.Configured() {
		metrics.DataServiceRequests.WithLabelValues(q.table, "inert").Inc()
		if q.single {
			return ErrNoRows
		}
		return json.Unmarshal([]byte("[]"), dst)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + restPath + url.PathEscape(q.table) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.setHeaders(req)
	if q.single {
		req.Header.Set("Accept", singleObjectMediaType)
	} else {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.DataServiceRequests.WithLabelValues(q.table, "error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp)

		var e *APIError
		if q.single && errors.As(apiErr, &e) && noMatch(e) {
			metrics.DataServiceRequests.WithLabelValues(q.table, "not_found").Inc()
			return ErrNoRows
		}

		metrics.DataServiceRequests.WithLabelValues(q.table, "error").Inc()
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		metrics.DataServiceRequests.WithLabelValues(q.table, "error").Inc()
		return fmt.Errorf("%s: decode %s: %w", op, q.table, err)
	}

	metrics.DataServiceRequests.WithLabelValues(q.table, "ok").Inc()
	return nil
}

// noMatch reports whether a failed single-row lookup simply matched nothing.
// A filter value the column type cannot hold matches nothing either.
func noMatch(e *APIError) bool {
	switch {
	case e.Code == noRowsCode, e.Status == http.StatusNotAcceptable:
		return true
	case e.Code == invalidTextCode && e.Status == http.StatusBadRequest:
		return true
	}
	return false
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}
