package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/taskkeeper/internal/client/storage"
	"github.com/iudanet/taskkeeper/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	token, err := c.apiClient.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return err
	}

	// Токен не несет username в ответе, берем профиль
	bio, err := c.apiClient.Bio(ctx, token.Token)
	if err != nil {
		return err
	}

	session := &storage.Session{
		Username:  bio.Username,
		UserID:    bio.ID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt.Unix(),
	}
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", bio.Username)
	c.io.Printf("Token expires: %s\n", token.ExpiresAt.Local().Format(time.RFC3339))

	return nil
}
