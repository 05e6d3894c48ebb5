package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bbs/internal/types"
)

// Shape describes how a list endpoint wraps its items.
type Shape int

const (
	// ShapeBare is a top-level JSON array of items.
	ShapeBare Shape = iota
	// ShapeEnvelope is an object whose Field holds the array of items.
	ShapeEnvelope
)

// Collection adapts one list endpoint's response shape to a slice of T.
type Collection[T any] struct {
	Shape  Shape
	Field  string
	Schema string
}

var (
	ThreadCollection = Collection[types.Thread]{Shape: ShapeBare, Schema: schemaThreadList}
	PostCollection   = Collection[types.Post]{Shape: ShapeEnvelope, Field: "posts", Schema: schemaPostList}
)

func (col Collection[T]) decode(path string, body []byte) ([]T, error) {
	if err := validateBody(col.Schema, body); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	raw := json.RawMessage(body)
	if col.Shape == ShapeEnvelope {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
		field, ok := envelope[col.Field]
		if !ok {
			return nil, &DecodeError{Path: path, Err: fmt.Errorf("missing %q field", col.Field)}
		}
		raw = field
	}
	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return items, nil
}

// List fetches one page of a collection at the given offset.
func List[T any](ctx context.Context, c *Client, path string, offset int, col Collection[T]) ([]T, error) {
	if c == nil {
		return nil, errors.New("client is required")
	}
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return col.decode(path, body)
}

// Create posts a JSON body to path and decodes the created item. An empty
// response body yields a nil item and no error.
func Create[T any](ctx context.Context, c *Client, path string, payload any, schema string) (*T, error) {
	if c == nil {
		return nil, errors.New("client is required")
	}
	body, err := c.do(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	if err := validateBody(schema, body); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	var created T
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &created, nil
}

// ThreadsPath is the collection identifier of the thread listing.
func ThreadsPath() string {
	return "threads"
}

// PostsPath is the collection identifier of a thread's posts.
func PostsPath(threadID string) string {
	return "threads/" + url.PathEscape(strings.TrimSpace(threadID)) + "/posts"
}
