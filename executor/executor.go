// Package executor replays a command list against a SEMP management API.
//
// Commands are sent one at a time in list order. The first failure stops the
// replay; nothing is retried.
package executor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/reoring/sempcfg/command"
	"github.com/reoring/sempcfg/internal/logging"
)

const maxErrorBody = 64 << 10

// Options configures an Executor.
type Options struct {
	BaseURL  string // e.g. http://localhost:8080/SEMP/v2/config
	User     string
	Password string
	// Timeout bounds each request. Zero means no per-request timeout.
	Timeout time.Duration
	// HTTPClient overrides the client, mostly for tests.
	HTTPClient *http.Client
}

// Executor sends commands over HTTP with basic auth.
type Executor struct {
	base    string
	user    string
	pass    string
	timeout time.Duration
	client  *http.Client
}

// New validates opts and returns an Executor.
func New(opts Options) (*Executor, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("executor: base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("executor: base url %q must be http or https", opts.BaseURL)
	}
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Executor{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		user:    opts.User,
		pass:    opts.Password,
		timeout: opts.Timeout,
		client:  client,
	}, nil
}

// ExecError reports the command that failed and the broker's answer.
type ExecError struct {
	Index      int // Position in the list, zero based.
	Command    command.Command
	StatusCode int    // Zero when no response was received.
	Body       string // Raw response body, truncated.
	// Description is meta.error.description from a SEMP error body, if any.
	Description string
	Err         error // Transport error, if any.
}

func (e *ExecError) Error() string {
	head := fmt.Sprintf("executor: command %d (%s %s)", e.Index+1, e.Command.Method, e.Command.Path)
	switch {
	case e.Err != nil:
		return head + ": " + e.Err.Error()
	case e.Description != "":
		return fmt.Sprintf("%s: status %d: %s", head, e.StatusCode, e.Description)
	default:
		return fmt.Sprintf("%s: status %d: %s", head, e.StatusCode, e.Body)
	}
}

func (e *ExecError) Unwrap() error { return e.Err }

// Run sends every command of l in order and returns how many succeeded.
// It stops at the first failure, which is returned as *ExecError.
func (e *Executor) Run(ctx context.Context, l *command.List) (int, error) {
	cmds := l.Commands()
	for i, c := range cmds {
		logging.Debug("semp request", "index", i+1, "method", c.Method.String(), "path", c.Path)
		if err := e.do(ctx, c); err != nil {
			if ee, ok := err.(*ExecError); ok {
				ee.Index = i
			}
			logging.Error("semp request failed", "index", i+1, "method", c.Method.String(), "path", c.Path, "err", err)
			return i, err
		}
	}
	logging.Info("replay complete", "commands", len(cmds))
	return len(cmds), nil
}

func (e *Executor) do(ctx context.Context, c command.Command) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	var body io.Reader
	if c.HasPayload() {
		body = strings.NewReader(c.Payload)
	}
	req, err := http.NewRequestWithContext(ctx, c.Method.String(), e.base+c.Path, body)
	if err != nil {
		return &ExecError{Command: c, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.user != "" || e.pass != "" {
		req.SetBasicAuth(e.user, e.pass)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return &ExecError{Command: c, Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &ExecError{Command: c, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &ExecError{
		Command:     c,
		StatusCode:  resp.StatusCode,
		Body:        string(raw),
		Description: errorDescription(raw),
	}
}

// sempError is the error envelope of SEMP v2 responses.
type sempError struct {
	Meta struct {
		Error struct {
			Code        int    `json:"code"`
			Description string `json:"description"`
			Status      string `json:"status"`
		} `json:"error"`
		ResponseCode int `json:"responseCode"`
	} `json:"meta"`
}

func errorDescription(raw []byte) string {
	var se sempError
	if err := json.Unmarshal(raw, &se); err != nil {
		return ""
	}
	return se.Meta.Error.Description
}
