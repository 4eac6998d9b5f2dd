package services

import (
	"context"
	"net/http"

	"github.com/desertthunder/algox/internal/models"
)

// AuthService implements [Authenticator]. None of its calls carry a credential.
type AuthService struct {
	api *APIService
}

// NewAuthService creates an auth client on top of api.
func NewAuthService(api *APIService) *AuthService {
	return &AuthService{api: api}
}

// Register creates an account. The response body is ignored.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) error {
	_, err := s.api.Do(ctx, Request{Method: http.MethodPost, Path: "/register", Body: in})
	return err
}

// Login exchanges a username and password for a credential.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (models.Credential, error) {
	resp, err := s.api.Do(ctx, Request{Method: http.MethodPost, Path: "/login", Body: in})
	if err != nil {
		return models.Credential{}, err
	}
	return models.DecodeCredential(resp.Body)
}

// ForgotPassword asks the service to mail a reset token to the account's address.
func (s *AuthService) ForgotPassword(ctx context.Context, username string) error {
	body := map[string]string{"username": username}
	_, err := s.api.Do(ctx, Request{Method: http.MethodPost, Path: "/forgot-password", Body: body})
	return err
}

// ResetPassword sets a new password using the mailed token.
func (s *AuthService) ResetPassword(ctx context.Context, in models.ResetInput) error {
	_, err := s.api.Do(ctx, Request{Method: http.MethodPost, Path: "/reset-password", Body: in})
	return err
}
