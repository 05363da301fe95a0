package email

import "context"

// SendWelcomeEmail greets a newly registered user. An empty name falls
// back to the email address.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, name string) error {
	if name == "" {
		name = to
	}

	data := map[string]string{
		"UserName": name,
	}

	return c.SendEmail(
		ctx,
		to,
		"Welcome to Bookshelf!",
		TemplateWelcome,
		data,
	)
}
