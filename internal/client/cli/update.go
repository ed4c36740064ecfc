package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/iudanet/taskkeeper/pkg/api"
)

func (c *Cli) runUpdate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: update <id> [-title T] [-description D]")
	}
	id := args[0]

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(c.io)
	title := fs.String("title", "", "new task title")
	description := fs.String("description", "", "new task description")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	// Отправляем только явно заданные флаги: пустое описание тоже валидное значение
	var req api.UpdateTaskRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			req.Title = title
		case "description":
			req.Description = description
		}
	})
	if req.Title == nil && req.Description == nil {
		return fmt.Errorf("nothing to update: pass -title and/or -description")
	}

	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	task, err := c.apiClient.UpdateTask(ctx, session.Token, id, req)
	if err != nil {
		return explain(err)
	}

	c.io.Println("✓ Task updated!")
	c.printTask(task)
	return nil
}
