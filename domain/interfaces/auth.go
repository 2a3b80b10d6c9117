package interfaces

import (
	"context"

	"pom_automation/domain/entities"
)

// AuthAPI is the HTTP login endpoint under test
type AuthAPI interface {
	// Login posts the credential and returns the decoded response, whatever its status
	Login(ctx context.Context, credential entities.Credential) (*entities.APIResponse, error)
}
