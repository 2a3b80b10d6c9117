package entities

import "net/http"

// APIResponse is an HTTP response with its JSON body already decoded
type APIResponse struct {
	Status  int            `json:"status"`
	Headers http.Header    `json:"headers,omitempty"`
	Body    map[string]any `json:"body"`
	Raw     []byte         `json:"-"`
}

// ExpectedUser is the user a login response is expected to describe
type ExpectedUser struct {
	Email string `json:"email" yaml:"email"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
}
