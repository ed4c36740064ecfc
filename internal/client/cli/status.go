package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/taskkeeper/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'taskkeeper-client login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	expiresAt := time.Unix(session.ExpiresAt, 0)
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Printf("Token expires: %s\n", expiresAt.Local().Format(time.RFC3339))

	if session.Expired(c.now()) {
		c.io.Println("Status: Token has expired. Please login again.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Time remaining: %s\n", expiresAt.Sub(c.now()).Round(time.Second))

	return nil
}
