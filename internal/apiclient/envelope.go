package apiclient

import (
	"bytes"
	"encoding/json"

	"github.com/Avina-dox/DasavenaTI/internal/models"
)

type listEnvelope struct {
	Data json.RawMessage  `json:"data"`
	Meta *models.PageMeta `json:"meta"`
}

// normalizeList decodes a list response into out regardless of shape: list
// endpoints return either a bare JSON array or a {data, meta} envelope, and
// a bare array counts as a single page (nil meta). Every list call goes
// through here so the shape guessing lives in exactly one place.
func normalizeList(raw json.RawMessage, out any) (*models.PageMeta, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return nil, json.Unmarshal(raw, out)
	}

	var env listEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, json.Unmarshal(raw, out)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, err
	}
	return env.Meta, nil
}
