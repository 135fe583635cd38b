package strategy

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"thelab/models"
)

// SignUpPath is appended to the account service base URL.
const SignUpPath = "/sign-up"

// maxBodyBytes caps how much of a response body we keep as a message.
const maxBodyBytes = 64 << 10

// AccountClient talks to the account service over HTTP.
//
// One POST per CreateAccount, no retries. A 2xx answer is ok, any other
// answer is rejected, and anything that prevents an answer (refused
// connection, DNS, timeout, canceled context) is unreachable.
type AccountClient struct {
	baseURL    string
	encoding   models.Encoding
	httpClient *http.Client
}

// NewAccountClient creates a client for baseURL (e.g. http://localhost:8000/user).
// A zero timeout leaves requests unbounded.
func NewAccountClient(baseURL string, encoding models.Encoding, timeout time.Duration) *AccountClient {
	return &AccountClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		encoding: encoding,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the endpoint requests are sent to
func (c *AccountClient) URL() string {
	return c.baseURL + SignUpPath
}

// CreateAccount posts the sign-up data and classifies the HTTP outcome.
func (c *AccountClient) CreateAccount(ctx context.Context, data models.SignUpData) (AccountResponse, error) {
	body, err := models.EncodeSignUp(c.encoding, data)
	if err != nil {
		return AccountResponse{Status: StatusUnreachable}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return AccountResponse{Status: StatusUnreachable}, serr.Wrap(err, "failed to create sign-up request")
	}
	req.Header.Set("Content-Type", c.encoding.ContentType())
	req.Header.Set("Accept", "text/plain, application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AccountResponse{Status: StatusUnreachable}, serr.Wrap(err, "sign-up request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		// The status line arrived, so the service did answer
		logger.LogErr(serr.Wrap(err, "failed to read sign-up response body"), "status", resp.Status)
	}

	logger.Debug("Account service answered",
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	status := StatusRejected
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		status = StatusOK
	}
	return AccountResponse{Status: status, Body: string(respBody)}, nil
}
