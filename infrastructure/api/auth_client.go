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

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	DefaultLoginPath = "/login"
	defaultTimeout   = 30 * time.Second
)

type AuthClient struct {
	apiURL    string
	loginPath string
	client    *http.Client
	logger    *logrus.Logger
	redactor  interfaces.Redactor
}

// Option customises an AuthClient
type Option func(*AuthClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *AuthClient) { c.client = client }
}

func WithLoginPath(path string) Option {
	return func(c *AuthClient) { c.loginPath = path }
}

// NewAuthClient - creates a client for the login endpoint under apiURL
func NewAuthClient(apiURL string, logger *logrus.Logger, redactor interfaces.Redactor, opts ...Option) (*AuthClient, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("api url is not set")
	}

	c := &AuthClient{
		apiURL:    strings.TrimRight(apiURL, "/"),
		loginPath: DefaultLoginPath,
		client:    &http.Client{Timeout: defaultTimeout},
		logger:    logger,
		redactor:  redactor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Login - posts the credential as JSON. Non-2xx statuses are returned, not treated as errors.
func (c *AuthClient) Login(ctx context.Context, credential entities.Credential) (*entities.APIResponse, error) {
	jsonData, err := json.Marshal(map[string]string{
		"email":    credential.Email,
		"password": credential.Password,
	})
	if err != nil {
		return nil, err
	}

	url := c.apiURL + c.loginPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.WithField("url", url).Debug("Sending login request")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read login response: %w", err)
	}

	apiResp := DecodeResponse(resp.StatusCode, resp.Header, body)
	if apiResp.Body == nil {
		c.logger.Warnf("Login response is not a JSON object (status %d, %d bytes)", resp.StatusCode, len(body))
	} else {
		c.logger.WithField("status", resp.StatusCode).Debugf("Login response: %v", c.redactor.Redact(apiResp.Body))
	}
	return apiResp, nil
}

// DecodeResponse builds an APIResponse. Body stays nil when raw is not a JSON object.
func DecodeResponse(status int, header http.Header, raw []byte) *entities.APIResponse {
	resp := &entities.APIResponse{
		Status:  status,
		Headers: header,
		Raw:     raw,
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		resp.Body = body
	}
	return resp
}

var _ interfaces.AuthAPI = (*AuthClient)(nil)
