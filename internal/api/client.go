package api

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upskillhq/skillpath/internal/auth"
)

// DefaultTimeout bounds every remote call.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the current credential for request signing.
// The session store is the production implementation.
type TokenSource interface {
	Credential() *auth.Credential
}

// Client talks to the learning-management server. All methods are
// non-blocking at the UI level: callers run them off the event loop and
// deliver results back as messages.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: DefaultTimeout},
		tokens:  tokens,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges email/password for a token pair. The only endpoint
// called without a bearer credential.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	body := map[string]string{"email": email, "password": password}
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &pair, nil); err != nil {
		return nil, err
	}
	if pair.Access == "" {
		return nil, &ResponseError{Endpoint: "/auth/login", Err: fmt.Errorf("empty access token")}
	}
	return &pair, nil
}

// Employee fetches one employee's profile for display.
func (c *Client) Employee(ctx context.Context, employeeID string) (*Employee, error) {
	var emp Employee
	path := fmt.Sprintf("/learner/employees/%s", employeeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &emp, nil); err != nil {
		return nil, err
	}
	return &emp, nil
}

// Progress fetches the server-reported workflow position. An empty
// payload degrades to ASSESSMENT_NOT_STARTED rather than erroring, so a
// freshly created employee renders a locked-but-valid view.
func (c *Client) Progress(ctx context.Context, employeeID string) (*Progress, error) {
	var prog Progress
	path := fmt.Sprintf("/learner/%s/progress-bar", employeeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &prog, progressSchema); err != nil {
		return nil, err
	}
	if prog.CurrentStep == "" {
		prog.CurrentStep = "ASSESSMENT_NOT_STARTED"
	}
	return &prog, nil
}

// StartAssessment begins an assessment session on the server.
func (c *Client) StartAssessment(ctx context.Context, employeeID string) error {
	path := fmt.Sprintf("/learner/%s/assessment/start", employeeID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// GenerateQuestions requests the generated assessment questions.
func (c *Client) GenerateQuestions(ctx context.Context, employeeID string) ([]Question, error) {
	var out struct {
		Questions []Question `json:"questions"`
	}
	path := fmt.Sprintf("/learner/%s/assessment/generate", employeeID)
	if err := c.do(ctx, http.MethodPost, path, nil, &out, nil); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// SubmitAssessment submits answers and returns the per-skill score map.
// The client performs no scoring of its own.
func (c *Client) SubmitAssessment(ctx context.Context, employeeID string, answers map[string]string) (map[string]float64, error) {
	body := map[string]any{"answers": answers}
	var out struct {
		Results map[string]float64 `json:"results"`
	}
	path := fmt.Sprintf("/learner/%s/assessment/submit", employeeID)
	if err := c.do(ctx, http.MethodPost, path, body, &out, nil); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// GenerateLearningPath asks the server to build the learning path. A
// refusal surfaces as a *RejectionError carrying the server's message.
func (c *Client) GenerateLearningPath(ctx context.Context, employeeID string) error {
	path := fmt.Sprintf("/learner/%s/generate_learning_path", employeeID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// LearningPath fetches the employee's learning items.
func (c *Client) LearningPath(ctx context.Context, employeeID string) ([]LearningItem, error) {
	var out struct {
		Items []LearningItem `json:"items"`
	}
	path := fmt.Sprintf("/learner/%s/learning-path", employeeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, learningPathSchema); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// StartLearningItem marks an item started on the server.
func (c *Client) StartLearningItem(ctx context.Context, employeeID string, itemID int) error {
	path := fmt.Sprintf("/learner/%s/learning/%d/start", employeeID, itemID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// CompleteLearningItem marks an item complete on the server. Completing
// an already-done item is treated as success, keeping the explicit
// "mark done" action and the tracker-driven completion idempotent.
func (c *Client) CompleteLearningItem(ctx context.Context, employeeID string, itemID int) error {
	path := fmt.Sprintf("/learner/%s/learning/%d/complete", employeeID, itemID)
	err := c.do(ctx, http.MethodPost, path, nil, nil, nil)
	var rej *RejectionError
	if errors.As(err, &rej) && rej.StatusCode == http.StatusConflict {
		return nil
	}
	return err
}

// do performs one request: sign, send, map status codes, decode and
// optionally validate the body.
func (c *Client) do(ctx context.Context, method, path string, body, out any, validate *schema) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred := c.tokens.Credential(); cred != nil {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response from %s: %w", path, err)
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", path, ErrUnauthorized)
	case resp.StatusCode >= 400:
		return &RejectionError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(raw),
		}
	}

	if out == nil {
		return nil
	}
	if validate != nil {
		if err := validatePayload(validate, raw); err != nil {
			return &ResponseError{Endpoint: path, Err: err}
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ResponseError{Endpoint: path, Err: err}
	}
	return nil
}

// serverMessage extracts the error message from a rejection payload.
func serverMessage(raw []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Detail
}
