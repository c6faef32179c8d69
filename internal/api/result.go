package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"foodhub/internal/metrics"

	"github.com/tidwall/gjson"
)

// Outcome discriminates the three ways a remote call can end.
type Outcome int

const (
	// OutcomeSuccess: 2xx response with a decodable body.
	OutcomeSuccess Outcome = iota
	// OutcomeError: the server answered with a status outside 200..299.
	OutcomeError
	// OutcomeException: no usable server response (transport, timeout, decoding).
	OutcomeException
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	case OutcomeException:
		return "exception"
	default:
		return "unknown"
	}
}

// Result is the single value every network call is funnelled through.
// Only the fields of the active Outcome are meaningful.
type Result[T any] struct {
	Outcome Outcome
	Data    T
	Code    int
	Message string
	Err     error
}

func Success[T any](data T) Result[T] {
	return Result[T]{Outcome: OutcomeSuccess, Data: data}
}

func Error[T any](code int, message string) Result[T] {
	return Result[T]{Outcome: OutcomeError, Code: code, Message: message}
}

func Exception[T any](err error) Result[T] {
	return Result[T]{Outcome: OutcomeException, Err: err}
}

func (r Result[T]) OK() bool          { return r.Outcome == OutcomeSuccess }
func (r Result[T]) IsError() bool     { return r.Outcome == OutcomeError }
func (r Result[T]) IsException() bool { return r.Outcome == OutcomeException }

// Describe returns a user-facing message for a non-success result.
func (r Result[T]) Describe() string {
	switch r.Outcome {
	case OutcomeError:
		if r.Message != "" {
			return r.Message
		}
		return http.StatusText(r.Code)
	case OutcomeException:
		if r.Err != nil {
			return r.Err.Error()
		}
		return "Unknown error"
	default:
		return ""
	}
}

// HTTPClient is the outbound transport; *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Do performs exactly one exchange and never returns a raw transport fault:
// every failure is captured in the Result.
func Do[T any](ctx context.Context, client HTTPClient, endpoint string, req *http.Request) (res Result[T]) {
	start := time.Now()
	defer func() {
		metrics.ObserveCall(endpoint, res.Outcome.String(), time.Since(start))
	}()

	if ctx != nil {
		req = req.WithContext(ctx)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Exception[T](fmt.Errorf("%s: %w", endpoint, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Exception[T](fmt.Errorf("%s: read body: %w", endpoint, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Error[T](resp.StatusCode, errorMessage(body, resp.StatusCode))
	}

	var data T
	if len(bytes.TrimSpace(body)) == 0 {
		return Success(data)
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return Exception[T](fmt.Errorf("%s: decode response: %w", endpoint, err))
	}
	return Success(data)
}

// errorMessage extracts a best-effort message from an error body.
func errorMessage(body []byte, code int) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"message", "error"} {
			v := gjson.GetBytes(body, path)
			if v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return http.StatusText(code)
}
