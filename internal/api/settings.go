package api

import (
	"context"
	"net/http"

	"github.com/user/scout/internal/model"
)

// SettingsAPI makes calls against the settings endpoints.
type SettingsAPI struct {
	c *Client
}

// NewSettingsAPI returns a settings gateway on top of c.
func NewSettingsAPI(c *Client) *SettingsAPI {
	return &SettingsAPI{c: c}
}

// Get returns the stored settings. The server answers `null` when nothing
// has been stored yet; that decodes to the zero Settings, so consumers
// always receive a value.
func (a *SettingsAPI) Get(ctx context.Context) Result[model.Settings] {
	settings, err := request[model.Settings](ctx, a.c, http.MethodGet, "/settings", nil)
	if err != nil {
		return Errorf[model.Settings]("could not get settings: %v", err)
	}
	return Success(settings)
}

// Update replaces the stored settings and returns the stored record.
func (a *SettingsAPI) Update(ctx context.Context, settings model.Settings) Result[model.Settings] {
	stored, err := request[model.Settings](ctx, a.c, http.MethodPut, "/settings", settings)
	if err != nil {
		return Errorf[model.Settings]("could not update settings: %v", err)
	}
	return Success(stored)
}

// Models returns the model identifiers available for extraction.
func (a *SettingsAPI) Models(ctx context.Context) Result[[]string] {
	models, err := request[[]string](ctx, a.c, http.MethodGet, "/settings/models", nil)
	if err != nil {
		return Errorf[[]string]("could not get models: %v", err)
	}
	return Success(models)
}
