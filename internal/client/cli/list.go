package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// maxListTitle длина заголовка в таблице, дальше обрезаем
const maxListTitle = 40

func (c *Cli) runList(ctx context.Context) error {
	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	resp, err := c.apiClient.ListTasks(ctx, session.Token)
	if err != nil {
		return explain(err)
	}

	if resp.Count == 0 {
		c.io.Println("No tasks found.")
		return nil
	}

	c.io.Printf("=== Tasks (%d) ===\n\n", resp.Count)

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tOWNER\tCREATED")
	for _, t := range resp.Data {
		owner := t.UserID
		if owner == session.UserID {
			owner = "me"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, truncate(t.Title, maxListTitle), owner, formatTime(t.CreatedAt))
	}
	return w.Flush()
}
