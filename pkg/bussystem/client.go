package bussystem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Transport is the one seam every higher layer talks to the provider
// through. The body carries endpoint-specific fields only; dealer
// credentials are merged in by the implementation.
type Transport interface {
	Post(ctx context.Context, endpoint string, body map[string]interface{}) (interface{}, error)
}

const maxRetries = 3

type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(config Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
	}
}

// Post sends a JSON body to an endpoint and returns the decoded response,
// whether the provider answered in JSON or XML. Transport failures and 5xx
// responses are retried with exponential backoff; validation, 4xx and
// provider business errors are not.
func (c *Client) Post(ctx context.Context, endpoint string, body map[string]interface{}) (interface{}, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Code: ErrorCodeCancelled, Message: err.Error()}
	}

	requestBody := map[string]interface{}{
		"login":    c.config.Login,
		"password": c.config.Password,
		"lang":     c.config.Language,
		"v":        c.config.Version,
	}
	for key, value := range body {
		requestBody[key] = value
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, &Error{Code: ErrorCodeParse, Message: err.Error()}
	}

	var parsed interface{}

	operation := func() error {
		var attemptErr error
		parsed, attemptErr = c.attempt(ctx, endpoint, requestJSON)

		if attemptErr != nil {
			typed := AsError(attemptErr)
			if !typed.Retryable {
				return backoff.Permanent(typed)
			}

			log.Debug().Str("endpoint", endpoint).Str("code", string(typed.Code)).Msg("Retrying provider request")
			return typed
		}

		return nil
	}

	retryBackoff := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries)
	if err := backoff.Retry(operation, backoff.WithContext(retryBackoff, ctx)); err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return nil, permanent.Err
		}

		return nil, AsError(err)
	}

	return parsed, nil
}

func (c *Client) attempt(ctx context.Context, endpoint string, requestJSON []byte) (interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+endpoint, bytes.NewReader(requestJSON))
	if err != nil {
		return nil, &Error{Code: ErrorCodeNetwork, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &Error{Code: ErrorCodeCancelled, Message: ctx.Err().Error()}
		}

		code := ErrorCodeNetwork
		if isTimeout(err) {
			code = ErrorCodeTimeout
		}

		return nil, &Error{Code: code, Message: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Code: ErrorCodeNetwork, Message: err.Error(), Retryable: true}
	}

	if resp.StatusCode >= 500 {
		return nil, &Error{Code: ErrorCodeHTTP, Message: resp.Status, Retryable: true}
	}
	if resp.StatusCode >= 400 {
		return nil, &Error{Code: ErrorCodeHTTP, Message: resp.Status}
	}

	parsed, err := decodeBody(resp.Header.Get("Content-Type"), responseBytes)
	if err != nil {
		return nil, err
	}

	if sentinel := CheckSentinel(parsed); sentinel != nil {
		return nil, sentinel
	}

	return parsed, nil
}

// decodeBody negotiates on content type, falling back to sniffing the first
// byte because the provider occasionally serves XML with a JSON header.
func decodeBody(contentType string, body []byte) (interface{}, error) {
	trimmed := bytes.TrimSpace(body)

	if strings.Contains(contentType, "xml") || (len(trimmed) > 0 && trimmed[0] == '<') {
		return ParseXML(bytes.NewReader(trimmed))
	}

	var parsed interface{}
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return nil, &Error{Code: ErrorCodeParse, Message: err.Error()}
	}

	return parsed, nil
}

// CheckSentinel reports a request-level provider failure hidden in an
// otherwise 200 response: any body carrying an error field.
func CheckSentinel(parsed interface{}) *Error {
	body, ok := parsed.(map[string]interface{})
	if !ok {
		return nil
	}

	errorValue, present := body["error"]
	if !present {
		if root, hasRoot := body["root"].(map[string]interface{}); hasRoot {
			errorValue, present = root["error"]
		}

		if !present {
			return nil
		}
	}

	switch v := errorValue.(type) {
	case string:
		if v == "" {
			return nil
		}
		return newProviderError(v)
	case map[string]interface{}:
		if text, hasText := v["error"].(string); hasText {
			return newProviderError(text)
		}
		return newProviderError("unknown provider error")
	default:
		return newProviderError("unknown provider error")
	}
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }

	var t timeout
	if errors.As(err, &t) {
		return t.Timeout()
	}

	return strings.Contains(err.Error(), "Client.Timeout")
}
