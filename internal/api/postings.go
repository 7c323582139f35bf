package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/user/scout/internal/model"
)

// PostingsAPI makes calls against the postings endpoints.
type PostingsAPI struct {
	c *Client
}

// NewPostingsAPI returns a postings gateway on top of c.
func NewPostingsAPI(c *Client) *PostingsAPI {
	return &PostingsAPI{c: c}
}

// Get returns a single posting by id.
func (a *PostingsAPI) Get(ctx context.Context, id int) Result[model.Posting] {
	posting, err := request[model.Posting](ctx, a.c, http.MethodGet, fmt.Sprintf("/postings/%d", id), nil)
	if err != nil {
		return Errorf[model.Posting]("could not get posting: %v", err)
	}
	return Success(posting)
}

// Refresh triggers a server-side re-scrape and returns the resulting
// postings. With a source id only that source is scraped.
func (a *PostingsAPI) Refresh(ctx context.Context, sourceID *int) Result[[]model.Posting] {
	path := "/postings/refresh"
	if sourceID != nil {
		path += "?source_id=" + strconv.Itoa(*sourceID)
	}
	postings, err := request[[]model.Posting](ctx, a.c, http.MethodGet, path, nil)
	if err != nil {
		return Errorf[[]model.Posting]("could not refresh postings: %v", err)
	}
	return Success(postings)
}

// Unread returns all postings not yet seen by the user.
func (a *PostingsAPI) Unread(ctx context.Context) Result[[]model.Posting] {
	postings, err := request[[]model.Posting](ctx, a.c, http.MethodGet, "/postings/unread", nil)
	if err != nil {
		return Errorf[[]model.Posting]("could not get unread postings: %v", err)
	}
	return Success(postings)
}

// Bookmarked returns all bookmarked postings.
func (a *PostingsAPI) Bookmarked(ctx context.Context) Result[[]model.Posting] {
	postings, err := request[[]model.Posting](ctx, a.c, http.MethodGet, "/postings/bookmarked", nil)
	if err != nil {
		return Errorf[[]model.Posting]("could not get bookmarked postings: %v", err)
	}
	return Success(postings)
}

// List returns postings, optionally constrained to a source and to a seen
// state.
func (a *PostingsAPI) List(ctx context.Context, sourceID *int, read *bool) Result[[]model.Posting] {
	query := url.Values{}
	if sourceID != nil {
		query.Set("source_id", strconv.Itoa(*sourceID))
	}
	if read != nil {
		query.Set("read", strconv.FormatBool(*read))
	}
	path := "/postings"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	postings, err := request[[]model.Posting](ctx, a.c, http.MethodGet, path, nil)
	if err != nil {
		return Errorf[[]model.Posting]("could not get postings: %v", err)
	}
	return Success(postings)
}

// MarkRead marks the given posting ids as seen.
func (a *PostingsAPI) MarkRead(ctx context.Context, ids []int) Result[struct{}] {
	_, err := request[struct{}](ctx, a.c, http.MethodPut, "/postings/mark_read", ids)
	if err != nil {
		return Errorf[struct{}]("cannot mark postings as read: %v", err)
	}
	return Success(struct{}{})
}

// Update replaces a posting and returns the stored record.
func (a *PostingsAPI) Update(ctx context.Context, posting model.Posting) Result[model.Posting] {
	if posting.ID == nil {
		return Errorf[model.Posting]("could not update posting: missing id")
	}
	stored, err := request[model.Posting](ctx, a.c, http.MethodPut, fmt.Sprintf("/postings/%d", *posting.ID), posting)
	if err != nil {
		return Errorf[model.Posting]("could not update posting: %v", err)
	}
	return Success(stored)
}
