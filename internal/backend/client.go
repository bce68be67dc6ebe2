package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/evaluador/internal/app"
	"github.com/alexanderramin/evaluador/internal/contract"
	"github.com/alexanderramin/evaluador/internal/domain"
)

// Client talks to the evaluation REST backend. It serves as experience
// source, enum source and evaluation submitter.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

var (
	_ app.ExperienceSource    = (*Client)(nil)
	_ app.EnumSource          = (*Client)(nil)
	_ app.EvaluationSubmitter = (*Client)(nil)
)

func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// httpStatusError is a non-2xx reply.
type httpStatusError struct {
	Status int
	Body   []byte
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, strings.TrimSpace(string(e.Body)))
}

// SubmitEvaluation posts the evaluation once. It is never retried here; a
// retry is the caller's decision.
func (c *Client) SubmitEvaluation(ctx context.Context, ev *domain.Evaluation) (*app.SubmitResult, error) {
	body, err := json.Marshal(contract.NewEvaluationRequest(ev))
	if err != nil {
		return nil, fmt.Errorf("marshaling evaluation: %w", err)
	}

	respBody, err := c.call(ctx, OpSubmitEvaluation, http.MethodPost, "/api/Evaluation/create", body, 0)
	if err != nil {
		return nil, submitError(err)
	}

	var resp contract.EvaluationResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &app.SubmitError{
			Code:    contract.SubmitErrInternal,
			Message: "decoding evaluation response",
			Err:     fmt.Errorf("%w: %v", ErrInvalidResponse, err),
		}
	}
	res := &app.SubmitResult{
		EvaluationID:     resp.EvaluationID,
		EvaluationResult: domain.Tier(resp.EvaluationResult),
	}
	if resp.TotalScore != nil {
		res.TotalScore = *resp.TotalScore
		res.TotalReported = true
	}
	return res, nil
}

// ListExperiences fetches GET /api/Experience/List.
func (c *Client) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	respBody, err := c.call(ctx, OpListExperiences, http.MethodGet, "/api/Experience/List", nil, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("listing experiences: %w", classify(err))
	}
	var dtos []contract.ExperienceDTO
	if err := json.Unmarshal(respBody, &dtos); err != nil {
		return nil, fmt.Errorf("%w: experiences: %v", ErrInvalidResponse, err)
	}
	out := make([]domain.Experience, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.ToDomain())
	}
	return out, nil
}

// ListEnum fetches GET /api/Helper/{name}.
func (c *Client) ListEnum(ctx context.Context, name string) ([]domain.EnumOption, error) {
	path := "/api/Helper/" + url.PathEscape(name)
	respBody, err := c.call(ctx, OpListEnum, http.MethodGet, path, nil, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", name, classify(err))
	}
	var resp contract.EnumResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, name, err)
	}
	if !resp.Success && len(resp.Data) == 0 {
		return nil, fmt.Errorf("listing %s: %w: %s", name, ErrRejected, resp.Message)
	}
	return resp.Options(), nil
}

func (c *Client) call(ctx context.Context, op Operation, method, path string, body []byte, retries int) ([]byte, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.Timeout(op))*time.Millisecond)
	defer cancel()

	var (
		lastErr  error
		status   int
		attempts int
	)
	for i := 0; i <= retries; i++ {
		attempts++
		var respBody []byte
		respBody, status, lastErr = c.doRequest(ctx, method, path, body)
		if lastErr == nil {
			c.observer.OnCallComplete(CallEvent{
				Op: op, Path: path, StatusCode: status, Attempts: attempts,
				LatencyMs: time.Since(start).Milliseconds(), Success: true,
			})
			return respBody, nil
		}
		if ctx.Err() != nil || !retryable(lastErr) {
			break
		}
	}

	if ctx.Err() != nil {
		lastErr = fmt.Errorf("%w: %v", ErrTimeout, lastErr)
	}
	c.observer.OnCallComplete(CallEvent{
		Op: op, Path: path, StatusCode: status, Attempts: attempts,
		LatencyMs: time.Since(start).Milliseconds(), ErrorCode: errorCode(classify(lastErr)),
	})
	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &httpStatusError{Status: resp.StatusCode, Body: respBody}
	}
	return respBody, resp.StatusCode, nil
}

// retryable is true for connection failures and 5xx replies.
func retryable(err error) bool {
	var se *httpStatusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	return isConnectionError(err)
}

// classify maps a transport error onto the package sentinels.
func classify(err error) error {
	var se *httpStatusError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrTimeout):
		return err
	case errors.As(err, &se):
		switch {
		case se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		case se.Status >= 500:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		default:
			return fmt.Errorf("%w: %v", ErrRejected, err)
		}
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return err
	}
}

// problemBody is the shape of a validation failure reply.
type problemBody struct {
	Message string              `json:"message"`
	Title   string              `json:"title"`
	Errors  map[string][]string `json:"errors"`
}

func submitError(err error) error {
	cause := classify(err)
	se := &app.SubmitError{Message: err.Error(), Err: cause}
	switch {
	case errors.Is(cause, ErrUnauthorized):
		se.Code = contract.SubmitErrUnauthorized
		se.Message = "credentials refused"
	case errors.Is(cause, ErrUnavailable), errors.Is(cause, ErrTimeout):
		se.Code = contract.SubmitErrUnavailable
	case errors.Is(cause, ErrRejected):
		se.Code = contract.SubmitErrInvalidRecord
		var hse *httpStatusError
		if errors.As(err, &hse) {
			var pb problemBody
			if json.Unmarshal(hse.Body, &pb) == nil {
				se.Message = domain.FirstNonBlank(pb.Message, pb.Title, se.Message)
				for k, msgs := range pb.Errors {
					if len(msgs) > 0 {
						if se.Fields == nil {
							se.Fields = map[string]string{}
						}
						se.Fields[k] = msgs[0]
					}
				}
			}
		}
	default:
		se.Code = contract.SubmitErrInternal
	}
	return se
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}
