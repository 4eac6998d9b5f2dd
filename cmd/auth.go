package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/session"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates an account. It never logs in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	in := models.RegisterInput{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Email:    cmd.String("email"),
	}

	r.logger.Info("registering account", "username", in.Username)
	err := r.authFlow.Register(ctx, in)
	return r.report(r.authFlow.RegisterForm(), err)
}

// AuthLogin exchanges a username and password for a session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")

	r.logger.Info("logging in", "username", username)
	cred, err := r.authFlow.Login(ctx, username, cmd.String("password"))
	if err == nil {
		r.writePlain("User ID: %s\n", cred.UserID)
	}
	return r.report(r.authFlow.LoginForm(), err)
}

// AuthLogout forgets the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	r.logger.Info("logged out")
	return r.writePlain("✓ Logged out\n")
}

// AuthForgot asks the service to mail a password reset token.
func (r *Runner) AuthForgot(ctx context.Context, cmd *cli.Command) error {
	err := r.authFlow.RequestPasswordReset(ctx, cmd.String("username"))
	return r.report(r.authFlow.ForgotForm(), err)
}

// AuthReset sets a new password using a mailed reset token.
func (r *Runner) AuthReset(ctx context.Context, cmd *cli.Command) error {
	in := models.ResetInput{
		Username:        cmd.String("username"),
		Email:           cmd.String("email"),
		Token:           cmd.String("token"),
		NewPassword:     cmd.String("password"),
		ConfirmPassword: cmd.String("confirm"),
	}

	err := r.authFlow.ResetPassword(ctx, in)
	return r.report(r.authFlow.ResetForm(), err)
}

// AuthStatus shows the stored session. Token claims are decoded for display only.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	cred, ok := r.session.Get()
	if !ok {
		return r.writePlain("✗ Not logged in\n")
	}

	r.writePlain("✓ Logged in\n")
	r.writePlain("User ID: %s\n", cred.UserID)

	claims, err := session.Inspect(cred.Token)
	if err != nil {
		r.logger.Debug("token claims unavailable", "error", err)
		return r.writePlain("Token: opaque\n")
	}

	if claims.Username != "" {
		r.writePlain("Username: %s\n", claims.Username)
	}
	if exp := claims.Expiry(); !exp.IsZero() {
		state := "valid"
		if claims.Expired(time.Now()) {
			state = "expired, log in again"
		}
		r.writePlain("Expires: %s (%s)\n", exp.Local().Format(time.RFC1123), state)
	}
	return nil
}
