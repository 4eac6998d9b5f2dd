package flows

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/services"
	"github.com/desertthunder/algox/internal/shared"
)

const (
	msgRegistered     = "Registration successful. Verify your email, then log in."
	msgRegisterFailed = "Registration failed. Please try again."
	msgLoggedIn       = "Logged in."
	msgLoginFailed    = "Login failed. Check your username and password."
	msgResetRequested = "If the account exists, a reset token was sent to its email."
	msgResetReqFailed = "Could not request a reset token. You can still use one you already have."
	msgPasswordReset  = "Password reset. Please log in."
	msgResetFailed    = "Password reset failed. Check the token and try again."
)

// CredentialSink receives the credential issued by a successful login.
type CredentialSink interface {
	Set(ctx context.Context, token string, userID models.ID) error
}

// AuthFlow drives the account forms.
type AuthFlow struct {
	auth   services.Authenticator
	store  CredentialSink
	nav    Navigator
	logger *log.Logger

	register Machine
	login    Machine
	forgot   Machine
	reset    Machine
}

// NewAuthFlow creates the account flows. A nil nav discards navigation.
func NewAuthFlow(auth services.Authenticator, store CredentialSink, nav Navigator, logger *log.Logger) *AuthFlow {
	if nav == nil {
		nav = discard{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AuthFlow{auth: auth, store: store, nav: nav, logger: logger}
}

func (f *AuthFlow) RegisterForm() *Machine { return &f.register }
func (f *AuthFlow) LoginForm() *Machine    { return &f.login }
func (f *AuthFlow) ForgotForm() *Machine   { return &f.forgot }
func (f *AuthFlow) ResetForm() *Machine    { return &f.reset }

// Register creates an account and sends the user to the login form.
//
// It never establishes a session.
func (f *AuthFlow) Register(ctx context.Context, in models.RegisterInput) error {
	invalid := in.Validate()
	err := run(&f.register, invalid, func() error {
		return f.auth.Register(ctx, in)
	}, msgRegistered, func(err error) string {
		logFailure(f.logger, "register", err)
		return msgRegisterFailed
	})
	if err != nil {
		return err
	}

	f.logger.Info("registered account", "username", in.Username)
	f.nav.Navigate(RouteLogin)
	return nil
}

// Login exchanges credentials for a session and sends the user home.
//
// A failed login leaves any existing session in place and shows a generic message.
func (f *AuthFlow) Login(ctx context.Context, username, password string) (models.Credential, error) {
	in := models.LoginInput{Username: username, Password: password}

	var cred models.Credential
	err := run(&f.login, in.Validate(), func() error {
		c, err := f.auth.Login(ctx, in)
		if err != nil {
			return err
		}
		if err := f.store.Set(ctx, c.Token, c.UserID); err != nil {
			if shared.IsValidation(err) {
				return fmt.Errorf("%w: %v", shared.ErrDataShape, err)
			}
			f.logger.Error("session not persisted", "error", err)
		}
		cred = c
		return nil
	}, msgLoggedIn, func(err error) string {
		logFailure(f.logger, "login", err)
		return msgLoginFailed
	})
	if err != nil {
		return models.Credential{}, err
	}

	f.logger.Info("logged in", "user_id", cred.UserID)
	f.nav.Navigate(RouteHome)
	return cred, nil
}

// RequestPasswordReset asks the service to mail a reset token.
//
// The user is sent to the reset form whether or not the request succeeded.
func (f *AuthFlow) RequestPasswordReset(ctx context.Context, username string) error {
	var invalid error
	if shared.IsBlank(username) {
		invalid = shared.Validation("username is required")
	}

	err := run(&f.forgot, invalid, func() error {
		return f.auth.ForgotPassword(ctx, username)
	}, msgResetRequested, func(err error) string {
		logFailure(f.logger, "forgot password", err)
		return msgResetReqFailed
	})
	if shared.IsValidation(err) {
		return err
	}

	f.nav.Navigate(RouteResetForm)
	return err
}

// ResetPassword sets a new password and sends the user to the login form.
//
// Mismatched passwords are rejected before any request. It never establishes a session.
func (f *AuthFlow) ResetPassword(ctx context.Context, in models.ResetInput) error {
	err := run(&f.reset, in.Validate(), func() error {
		return f.auth.ResetPassword(ctx, in)
	}, msgPasswordReset, func(err error) string {
		logFailure(f.logger, "reset password", err)
		return msgResetFailed
	})
	if err != nil {
		return err
	}

	f.nav.Navigate(RouteLogin)
	return nil
}
