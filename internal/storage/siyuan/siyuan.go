// Package siyuan implements storage.Storage over the SiYuan kernel HTTP API.
package siyuan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chris-regnier/dailylink/internal/note"
	"github.com/chris-regnier/dailylink/internal/storage"
)

// AppID is the app field sent with local storage writes.
const AppID = "siyuan"

// DefaultURL is the kernel address of a local SiYuan install.
const DefaultURL = "http://127.0.0.1:6806"

// APIError is a kernel response with a non-zero code.
type APIError struct {
	Endpoint string
	Code     int
	Msg      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("siyuan %s: code %d: %s", e.Endpoint, e.Code, e.Msg)
}

// Unwrap lets callers match storage.ErrUnavailable.
func (e *APIError) Unwrap() error { return storage.ErrUnavailable }

// Client talks to a SiYuan kernel.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the API token sent as "Authorization: Token <t>".
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for the kernel at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// post sends body to endpoint and decodes the envelope's data into out.
// out may be nil.
func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	if body == nil {
		body = struct{}{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: building %s request: %v", storage.ErrUnavailable, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", storage.ErrUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s response: %v", storage.ErrUnavailable, endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: HTTP %d", storage.ErrUnavailable, endpoint, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", storage.ErrUnavailable, endpoint, err)
	}
	if env.Code != 0 {
		return &APIError{Endpoint: endpoint, Code: env.Code, Msg: env.Msg}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decoding %s data: %v", storage.ErrUnavailable, endpoint, err)
	}
	return nil
}

// ListNotebooks calls /api/notebook/lsNotebooks.
func (c *Client) ListNotebooks(ctx context.Context) ([]note.Notebook, error) {
	var data struct {
		Notebooks []note.Notebook `json:"notebooks"`
	}
	if err := c.post(ctx, "/api/notebook/lsNotebooks", nil, &data); err != nil {
		return nil, err
	}
	return data.Notebooks, nil
}

// GetStorageValue reads key from /api/storage/getLocalStorage. Non-string
// values are returned as their JSON text.
func (c *Client) GetStorageValue(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty key", storage.ErrValidation)
	}
	var data map[string]json.RawMessage
	if err := c.post(ctx, "/api/storage/getLocalStorage", nil, &data); err != nil {
		return "", err
	}
	raw, ok := data[key]
	if !ok || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	return string(raw), nil
}

// SetStorageValue calls /api/storage/setLocalStorageVal.
func (c *Client) SetStorageValue(ctx context.Context, key, val string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", storage.ErrValidation)
	}
	return c.post(ctx, "/api/storage/setLocalStorageVal", map[string]string{
		"app": AppID,
		"key": key,
		"val": val,
	}, nil)
}

// DailyNoteSavePath returns the notebook's configured daily note path
// template, or storage.DefaultDailyNotePath when unset.
func (c *Client) DailyNoteSavePath(ctx context.Context, notebookID string) (string, error) {
	var data struct {
		Conf struct {
			DailyNoteSavePath string `json:"dailyNoteSavePath"`
		} `json:"conf"`
	}
	if err := c.post(ctx, "/api/notebook/getNotebookConf", map[string]string{"notebook": notebookID}, &data); err != nil {
		return "", err
	}
	if strings.TrimSpace(data.Conf.DailyNoteSavePath) == "" {
		return storage.DefaultDailyNotePath, nil
	}
	return data.Conf.DailyNoteSavePath, nil
}

// GetOrCreateDailyNote looks the daily note up by its rendered hpath and
// creates it, tagged with the dailynote attribute, when it does not exist.
func (c *Client) GetOrCreateDailyNote(ctx context.Context, notebookID string, date time.Time) (note.DailyNote, error) {
	if notebookID == "" {
		return note.DailyNote{}, fmt.Errorf("%w: empty notebook id", storage.ErrValidation)
	}
	tmpl, err := c.DailyNoteSavePath(ctx, notebookID)
	if err != nil {
		return note.DailyNote{}, err
	}
	hpath, err := storage.RenderDailyNotePath(tmpl, date)
	if err != nil {
		return note.DailyNote{}, err
	}
	label := note.DateLabel(date)

	var ids []string
	if err := c.post(ctx, "/api/filetree/getIDsByHPath", map[string]string{
		"notebook": notebookID,
		"path":     hpath,
	}, &ids); err != nil {
		return note.DailyNote{}, err
	}
	if len(ids) > 0 {
		return note.DailyNote{ID: ids[0], DateStr: label}, nil
	}

	var id string
	if err := c.post(ctx, "/api/filetree/createDocWithMd", map[string]string{
		"notebook": notebookID,
		"path":     hpath,
		"markdown": "",
	}, &id); err != nil {
		return note.DailyNote{}, err
	}
	if id == "" {
		return note.DailyNote{}, fmt.Errorf("%w: createDocWithMd returned no id", storage.ErrUnavailable)
	}

	key, val := note.DailyAttr(date)
	if err := c.post(ctx, "/api/attr/setBlockAttrs", map[string]any{
		"id":    id,
		"attrs": map[string]string{key: val},
	}, nil); err != nil {
		return note.DailyNote{}, err
	}
	return note.DailyNote{ID: id, DateStr: label}, nil
}

// AppendBlock appends markdown as a child of parentID.
func (c *Client) AppendBlock(ctx context.Context, parentID, markdown string) error {
	if parentID == "" {
		return fmt.Errorf("%w: empty parent id", storage.ErrValidation)
	}
	return c.post(ctx, "/api/block/appendBlock", map[string]string{
		"dataType": "markdown",
		"data":     markdown,
		"parentID": parentID,
	}, nil)
}

// PushErrMsg shows an error message in the SiYuan UI.
func (c *Client) PushErrMsg(ctx context.Context, msg string, timeout time.Duration) error {
	return c.post(ctx, "/api/notification/pushErrMsg", map[string]any{
		"msg":     msg,
		"timeout": timeout.Milliseconds(),
	}, nil)
}

// PushMsg shows an informational message in the SiYuan UI.
func (c *Client) PushMsg(ctx context.Context, msg string, timeout time.Duration) error {
	return c.post(ctx, "/api/notification/pushMsg", map[string]any{
		"msg":     msg,
		"timeout": timeout.Milliseconds(),
	}, nil)
}

// Close is a no-op; the kernel owns all state.
func (c *Client) Close() error { return nil }

// IsAPIError reports whether err carries a kernel error code.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
