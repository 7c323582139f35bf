package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/user/scout/internal/model"
)

// UsageAPI makes calls against the usage endpoints.
type UsageAPI struct {
	c *Client
}

// NewUsageAPI returns a usage gateway on top of c.
func NewUsageAPI(c *Client) *UsageAPI {
	return &UsageAPI{c: c}
}

// Cost returns the per-source extraction cost, optionally limited to the
// last `days` days.
func (a *UsageAPI) Cost(ctx context.Context, days *int) Result[[]model.Usage] {
	path := "/usage/cost"
	if days != nil {
		path += "?days=" + strconv.Itoa(*days)
	}
	usage, err := request[[]model.Usage](ctx, a.c, http.MethodGet, path, nil)
	if err != nil {
		return Errorf[[]model.Usage]("could not get usage: %v", err)
	}
	return Success(usage)
}
