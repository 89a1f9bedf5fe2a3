package blogapi

import "context"

// ListCategories returns the full category list. Categories never change from
// this side, so every view that needs them fetches fresh.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.api.Get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
