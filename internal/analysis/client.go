// Package analysis talks to the external fortune analysis service.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pbaille/lifestore/internal/domain"
)

const (
	// GenericFailure is shown when the service fails without a detail
	GenericFailure = "분석 중 오류가 발생했습니다."
	// ConnectionFailure is shown when the service cannot be reached
	ConnectionFailure = "서버 연결에 실패했습니다."
)

// Analyzer produces the canonical analysis for one submission
type Analyzer interface {
	Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error)
}

// RequestError is a failed analysis request. Message is user-visible.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("analyze: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("analyze: status %d: %s", e.Status, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client calls POST {base}/analyze
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{httpClient: client, logger: logger}
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// Analyze sends the submission and decodes the canonical result
func (c *Client) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	c.logger.Debug("calling analysis service",
		zap.Int("year", req.Year),
		zap.String("mbti", req.MBTI),
	)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		Post("/analyze")
	if err != nil {
		c.logger.Warn("analysis service unreachable", zap.Error(err))
		return nil, &RequestError{Message: ConnectionFailure, Err: err}
	}

	if !resp.IsSuccess() {
		msg := detailMessage(resp.Body())
		c.logger.Warn("analysis service returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("detail", msg),
		)
		return nil, &RequestError{Status: resp.StatusCode(), Message: msg}
	}

	var out domain.AnalyzeResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		c.logger.Warn("undecodable analysis response", zap.Error(err))
		return nil, &RequestError{Status: resp.StatusCode(), Message: GenericFailure, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &out, nil
}

// detailMessage extracts a string "detail" field, falling back to the
// generic message for bodies without one
func detailMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return GenericFailure
	}
	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err != nil || detail == "" {
		return GenericFailure
	}
	return detail
}
