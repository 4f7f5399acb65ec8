package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookingwizard/models"

	"go.uber.org/zap"
)

// GenericFailureMessage is shown when the booking could not be sent and the
// server gave no usable explanation.
const GenericFailureMessage = "Something went wrong. Please try again or contact us directly."

const maxErrorBody = 4 << 10

// OutcomeKind classifies the result of a submission.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRedirected
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRedirected:
		return "redirected"
	case OutcomeFailure:
		return "failure"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// MarshalText renders the kind as its name.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind written by MarshalText.
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	for _, kind := range []OutcomeKind{OutcomeSuccess, OutcomeRedirected, OutcomeFailure} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown outcome kind %q", text)
}

// Outcome is the result of the one network call that ends the wizard.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Location string      `json:"location,omitempty"`
	Message  string      `json:"message,omitempty"`
}

func Success() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

func Redirected(location string) Outcome {
	return Outcome{Kind: OutcomeRedirected, Location: location}
}

func Failure(message string) Outcome {
	return Outcome{Kind: OutcomeFailure, Message: message}
}

// SubmissionClient posts a finished booking to the booking endpoint.
type SubmissionClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSubmissionClient returns a client for endpoint. Redirects are never
// followed: a redirect response is itself the success signal.
func NewSubmissionClient(endpoint string, timeout time.Duration, logger *zap.Logger) *SubmissionClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}
}

// Submit sends data as JSON and interprets the response. Transport errors
// are logged and reported with GenericFailureMessage.
func (sc *SubmissionClient) Submit(ctx context.Context, data models.FormData) Outcome {
	body, err := json.Marshal(data)
	if err != nil {
		sc.logger.Error("Booking submit failed: marshal form", zap.Error(err))
		return Failure(GenericFailureMessage)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.endpoint, bytes.NewReader(body))
	if err != nil {
		sc.logger.Error("Booking submit failed: build request", zap.Error(err))
		return Failure(GenericFailureMessage)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := sc.httpClient.Do(req)
	if err != nil {
		sc.logger.Error("Booking submit failed: transport", zap.String("endpoint", sc.endpoint), zap.Error(err))
		return Failure(GenericFailureMessage)
	}
	defer resp.Body.Close()

	if isRedirect(resp.StatusCode) {
		loc, err := sc.resolveLocation(resp)
		if err != nil {
			sc.logger.Error("Booking submit failed: bad redirect", zap.Int("status", resp.StatusCode), zap.Error(err))
			return Failure(GenericFailureMessage)
		}
		return Redirected(loc)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Success()
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		sc.logger.Error("Booking submit failed: read body", zap.Int("status", resp.StatusCode), zap.Error(err))
		return Failure(GenericFailureMessage)
	}
	sc.logger.Warn("Booking submit rejected",
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", raw))
	return Failure(failureMessage(raw))
}

func (sc *SubmissionClient) resolveLocation(resp *http.Response) (string, error) {
	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", errors.New("redirect without Location header")
	}
	base, err := url.Parse(sc.endpoint)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(loc)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// failureMessage prefers the "error" field of a JSON body, then the raw
// text, then the generic message.
func failureMessage(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return GenericFailureMessage
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
		return GenericFailureMessage
	}
	return text
}
