package cli

import "context"

func (c *Cli) runBio(ctx context.Context) error {
	session, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	bio, err := c.apiClient.Bio(ctx, session.Token)
	if err != nil {
		return explain(err)
	}

	c.io.Printf("ID:       %s\n", bio.ID)
	c.io.Printf("Username: %s\n", bio.Username)
	return nil
}
