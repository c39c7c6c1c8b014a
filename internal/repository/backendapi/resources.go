package backendapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"easi-website/internal/domain"
)

// ListResources fetches the whole catalogue in server order.
func (c *Client) ListResources(ctx context.Context) ([]domain.Resource, error) {
	_, body, err := c.doJSON(ctx, http.MethodGet, resourcesPath, nil)
	if err != nil {
		return nil, err
	}

	var resources []domain.Resource
	if err := json.Unmarshal(body, &resources); err != nil {
		return nil, fmt.Errorf("%w: decode resources: %v", domain.ErrUpstream, err)
	}
	return resources, nil
}
