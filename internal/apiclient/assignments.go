package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Avina-dox/DasavenaTI/internal/models"
)

// AssignmentFilters are the query parameters of the assignment history
// endpoint. State is "current", "returned" or empty for all; From and To
// bound assigned_at as YYYY-MM-DD dates. Empty fields are omitted.
type AssignmentFilters struct {
	Q     string
	State string
	From  string
	To    string
	Page  int
}

func (f AssignmentFilters) query() url.Values {
	values := url.Values{}
	if f.Q != "" {
		values.Set("q", f.Q)
	}
	if f.State != "" {
		values.Set("state", f.State)
	}
	if f.From != "" {
		values.Set("from", f.From)
	}
	if f.To != "" {
		values.Set("to", f.To)
	}
	if f.Page > 0 {
		values.Set("page", strconv.Itoa(f.Page))
	}
	return values
}

// ListAssignments fetches one page of the global assignment history, each
// row carrying its asset and user. Meta is nil when the server answers with
// a bare array.
func (c *Client) ListAssignments(ctx context.Context, f AssignmentFilters) ([]models.Assignment, *models.PageMeta, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/assignments", f.query(), &raw); err != nil {
		return nil, nil, err
	}
	assignments := []models.Assignment{}
	meta, err := normalizeList(raw, &assignments)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding assignment list: %w", err)
	}
	return assignments, meta, nil
}

func (c *Client) CreateAssignment(ctx context.Context, req models.CreateAssignmentRequest) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := c.postJSON(ctx, "/assignments", req, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ReturnAssignment closes an open assignment, recording the condition the
// asset came back in.
func (c *Client) ReturnAssignment(ctx context.Context, id int64, req models.ReturnAssignmentRequest) error {
	return c.postJSON(ctx, fmt.Sprintf("/assignments/%d/return", id), req, nil)
}
