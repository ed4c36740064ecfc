package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <id>")
	}

	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	task, err := c.apiClient.DeleteTask(ctx, session.Token, args[0])
	if err != nil {
		return explain(err)
	}

	c.io.Printf("✓ Task deleted: %s (%s)\n", task.ID, task.Title)
	return nil
}
