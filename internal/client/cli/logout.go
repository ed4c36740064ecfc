package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/taskkeeper/internal/client/storage"
)

// runLogout удаляет локальную сессию. Токены без отзыва,
// поэтому на сервер запрос не отправляется.
func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	if err := c.sessions.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.io.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")

	return nil
}
