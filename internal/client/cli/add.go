package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/iudanet/taskkeeper/pkg/api"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(c.io)
	title := fs.String("title", "", "task title")
	description := fs.String("description", "", "task description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	// Без флагов спрашиваем интерактивно
	if strings.TrimSpace(*title) == "" {
		*title, err = c.io.ReadInput("Title: ")
		if err != nil {
			return fmt.Errorf("failed to read title: %w", err)
		}
		*description, err = c.io.ReadInput("Description: ")
		if err != nil {
			return fmt.Errorf("failed to read description: %w", err)
		}
	}
	if strings.TrimSpace(*title) == "" {
		return fmt.Errorf("title is required")
	}

	task, err := c.apiClient.CreateTask(ctx, session.Token, api.CreateTaskRequest{
		Title:       *title,
		Description: *description,
	})
	if err != nil {
		return explain(err)
	}

	c.io.Println("✓ Task created!")
	c.printTask(task)
	return nil
}
