package content

import "context"

// PlaceholderProvider renders static text for tiles that exist purely to
// reserve space. It never fails and needs no configuration.
type PlaceholderProvider struct{}

// Fetch returns the content's text, or a default marker when empty.
func (PlaceholderProvider) Fetch(ctx context.Context, c Content, width, height int) (string, error) {
	if c.Text != "" {
		return c.Text, nil
	}
	return "—", nil
}
