package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: get <id>")
	}

	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	task, err := c.apiClient.GetTask(ctx, session.Token, args[0])
	if err != nil {
		return explain(err)
	}

	c.printTask(task)
	return nil
}
