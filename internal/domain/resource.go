package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ResourceID accepts both numeric and string identifiers from the backend.
type ResourceID string

func (id *ResourceID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ResourceID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("resource id: %w", err)
	}
	*id = ResourceID(n.String())
	return nil
}

// Resource is a downloadable item (paper, guide, video) owned by the backend.
type Resource struct {
	ID          ResourceID `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
}

// createdAtLayouts are the timestamp shapes the backend has been seen to emit.
var createdAtLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Created parses CreatedAt. ok is false when it is missing or unparseable.
func (r Resource) Created() (t time.Time, ok bool) {
	if r.CreatedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, r.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type ResourceGateway interface {
	ListResources(ctx context.Context) ([]Resource, error)
	ResourceURL(id ResourceID) string
	DownloadURL(id ResourceID) string
}

// ListState is the lifecycle of one resource listing.
type ListState int

const (
	ListLoading ListState = iota
	ListLoaded
	ListErrored
)

func (s ListState) String() string {
	switch s {
	case ListLoaded:
		return "loaded"
	case ListErrored:
		return "errored"
	default:
		return "loading"
	}
}
