package cli

import (
	"time"

	"github.com/iudanet/taskkeeper/pkg/api"
)

func (c *Cli) printTask(t *api.Task) {
	c.io.Printf("ID:          %s\n", t.ID)
	c.io.Printf("Owner:       %s\n", t.UserID)
	c.io.Printf("Title:       %s\n", t.Title)
	c.io.Printf("Description: %s\n", t.Description)
	c.io.Printf("Created:     %s\n", formatTime(t.CreatedAt))
	if t.UpdatedAt != nil {
		c.io.Printf("Updated:     %s\n", formatTime(*t.UpdatedAt))
	}
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// truncate обрезает строку до n рун
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
