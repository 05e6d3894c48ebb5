package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"bbs/internal/config"
	"bbs/internal/logging"
	"bbs/internal/types"
)

const maxResponseBytes = 4 << 20

type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

func New(cfg config.CoreConfig, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Client{
		baseURL: cfg.BaseURL(),
		http: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: gzhttp.Transport(http.DefaultTransport),
		},
		logger: logger.With(logging.F("component", "client")),
	}
}

func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: gzhttp.Transport(http.DefaultTransport),
		},
		logger: logging.Nop(),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListThreads(ctx context.Context, offset int) ([]types.Thread, error) {
	return List(ctx, c, ThreadsPath(), offset, ThreadCollection)
}

func (c *Client) CreateThread(ctx context.Context, title string) (*types.Thread, error) {
	return Create[types.Thread](ctx, c, ThreadsPath(), CreateThreadRequest{Title: title}, schemaThread)
}

func (c *Client) ListPosts(ctx context.Context, threadID string, offset int) ([]types.Post, error) {
	if strings.TrimSpace(threadID) == "" {
		return nil, errors.New("thread id is required")
	}
	return List(ctx, c, PostsPath(threadID), offset, PostCollection)
}

func (c *Client) CreatePost(ctx context.Context, threadID, text string) (*types.Post, error) {
	if strings.TrimSpace(threadID) == "" {
		return nil, errors.New("thread id is required")
	}
	return Create[types.Post](ctx, c, PostsPath(threadID), CreatePostRequest{Post: text}, schemaPost)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	requestID := logging.NewRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.logger.With(
		logging.F("method", method),
		logging.F("path", "/"+strings.TrimLeft(path, "/")),
		logging.F("request_id", requestID),
	)
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("request failed", logging.F("err", err), logging.F("duration", time.Since(started)))
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Warn("read response failed", logging.F("err", err), logging.F("status", resp.StatusCode))
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp.StatusCode, resp.Status, data)
		logger.Warn("request rejected", logging.F("status", resp.StatusCode), logging.F("err", apiErr), logging.F("duration", time.Since(started)))
		return nil, apiErr
	}
	logger.Debug("request done", logging.F("status", resp.StatusCode), logging.F("bytes", len(data)), logging.F("duration", time.Since(started)))
	return data, nil
}
