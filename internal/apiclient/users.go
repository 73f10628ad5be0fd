package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Avina-dox/DasavenaTI/internal/models"
)

// ListUsers searches users by name or email. An empty search lists everyone.
func (c *Client) ListUsers(ctx context.Context, search string) ([]models.User, *models.PageMeta, error) {
	values := url.Values{}
	if search != "" {
		values.Set("search", search)
	}
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/users", values, &raw); err != nil {
		return nil, nil, err
	}
	users := []models.User{}
	meta, err := normalizeList(raw, &users)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding user list: %w", err)
	}
	return users, meta, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserAssignments returns a user's assignment history, open assignments
// first per server ordering, each row carrying its asset.
func (c *Client) UserAssignments(ctx context.Context, userID int64) ([]models.Assignment, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d/assignments", userID), nil, &raw); err != nil {
		return nil, err
	}
	assignments := []models.Assignment{}
	if _, err := normalizeList(raw, &assignments); err != nil {
		return nil, fmt.Errorf("decoding assignments: %w", err)
	}
	return assignments, nil
}
