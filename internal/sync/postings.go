package sync

import (
	"context"
	"sync"
	"time"

	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

// PostingsGateway is the slice of the remote API the postings handler needs.
type PostingsGateway interface {
	Get(ctx context.Context, id int) api.Result[model.Posting]
	Refresh(ctx context.Context, sourceID *int) api.Result[[]model.Posting]
	Unread(ctx context.Context) api.Result[[]model.Posting]
	Bookmarked(ctx context.Context) api.Result[[]model.Posting]
	List(ctx context.Context, sourceID *int, read *bool) api.Result[[]model.Posting]
	MarkRead(ctx context.Context, ids []int) api.Result[struct{}]
	Update(ctx context.Context, posting model.Posting) api.Result[model.Posting]
}

// PostingsHandler synchronizes the posting collection with the server and
// carries the optimistic toggle logic for bookmark/like/dislike.
type PostingsHandler struct {
	gw       PostingsGateway
	postings *store.Store[[]model.Posting]
	notify   *NotificationHandler

	mu    sync.Mutex
	local []model.Posting
	unsub func()
}

// NewPostingsHandler seeds a handler from the registry.
func NewPostingsHandler(reg *store.Registry, gw PostingsGateway) *PostingsHandler {
	h := &PostingsHandler{
		gw:       gw,
		postings: reg.Postings,
		notify:   NewNotificationHandler(reg.Notifications),
		local:    reg.Postings.Get(),
	}
	h.unsub = reg.Postings.Subscribe(func(postings []model.Posting) {
		h.mu.Lock()
		h.local = postings
		h.mu.Unlock()
	})
	return h
}

// Close detaches the handler from the store.
func (h *PostingsHandler) Close() {
	h.unsub()
}

// Postings returns the handler's working copy.
func (h *PostingsHandler) Postings() []model.Posting {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.local
}

// Subscribe registers fn to run whenever the posting collection changes.
func (h *PostingsHandler) Subscribe(fn func([]model.Posting)) func() {
	return h.postings.Subscribe(fn)
}

// PostingByID returns the posting with the given id from the working copy.
func (h *PostingsHandler) PostingByID(id int) (model.Posting, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range h.local {
		if p.ID != nil && *p.ID == id {
			return p, true
		}
	}
	return model.Posting{}, false
}

// TodaysPostings returns the postings created today, comparing calendar
// year/month/day in local time.
func (h *PostingsHandler) TodaysPostings() []model.Posting {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	var today []model.Posting
	for _, p := range h.local {
		created := p.CreatedAt.Local()
		if created.Year() == now.Year() && created.Month() == now.Month() && created.Day() == now.Day() {
			today = append(today, p)
		}
	}
	return today
}

// PostingsBySource partitions the working copy by source id, preserving
// collection order inside each group. Postings without a source group
// under 0.
func (h *PostingsHandler) PostingsBySource() map[int][]model.Posting {
	h.mu.Lock()
	defer h.mu.Unlock()

	groups := make(map[int][]model.Posting)
	for _, p := range h.local {
		key := 0
		if p.SourceID != nil {
			key = *p.SourceID
		}
		groups[key] = append(groups[key], p)
	}
	return groups
}

// Refresh replaces the posting collection. With a source id it pulls the
// read postings of that source (server-side filter); otherwise useCached
// decides between the unread cache and a full server-side re-scrape.
func (h *PostingsHandler) Refresh(ctx context.Context, useCached bool, sourceID *int) api.Result[[]model.Posting] {
	var res api.Result[[]model.Posting]
	switch {
	case !useCached:
		res = h.gw.Refresh(ctx, sourceID)
	case sourceID != nil:
		read := true
		res = h.gw.List(ctx, sourceID, &read)
	default:
		res = h.gw.Unread(ctx)
	}
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	h.postings.Set(res.Data)
	return res
}

// GetBookmarked fetches the bookmarked postings without touching the store.
func (h *PostingsHandler) GetBookmarked(ctx context.Context) api.Result[[]model.Posting] {
	res := h.gw.Bookmarked(ctx)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
	}
	return res
}

// MarkAsRead flags the given postings as seen, locally only after the
// server confirms.
func (h *PostingsHandler) MarkAsRead(ctx context.Context, ids []int) api.Result[struct{}] {
	res := h.gw.MarkRead(ctx, ids)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	h.postings.Update(func(current []model.Posting) []model.Posting {
		next := make([]model.Posting, len(current))
		copy(next, current)
		for i := range next {
			if next[i].ID == nil {
				continue
			}
			for _, id := range ids {
				if *next[i].ID == id {
					next[i].Seen = true
					break
				}
			}
		}
		return next
	})
	return res
}

// Bookmark toggles the bookmark flag of a posting.
func (h *PostingsHandler) Bookmark(ctx context.Context, id int) api.Result[model.Posting] {
	return h.toggle(ctx, id, func(p *model.Posting) {
		p.Bookmarked = !p.Bookmarked
	})
}

// Like sets the match flag to liked, or back to neutral when the posting is
// already liked.
func (h *PostingsHandler) Like(ctx context.Context, id int) api.Result[model.Posting] {
	return h.toggle(ctx, id, func(p *model.Posting) {
		if p.IsMatch != nil && *p.IsMatch {
			p.IsMatch = nil
		} else {
			p.IsMatch = model.BoolPtr(true)
		}
	})
}

// Dislike sets the match flag to disliked, or back to neutral when the
// posting is already disliked.
func (h *PostingsHandler) Dislike(ctx context.Context, id int) api.Result[model.Posting] {
	return h.toggle(ctx, id, func(p *model.Posting) {
		if p.IsMatch != nil && !*p.IsMatch {
			p.IsMatch = nil
		} else {
			p.IsMatch = model.BoolPtr(false)
		}
	})
}

// toggle fetches the authoritative posting, applies the change, shows it
// optimistically on the working copy, and persists it. Fetching by id first
// avoids toggling a stale local copy. On success the stored posting is
// spliced back at the same index; on failure the working copy reverts and
// the store stays untouched.
func (h *PostingsHandler) toggle(ctx context.Context, id int, apply func(*model.Posting)) api.Result[model.Posting] {
	if _, ok := h.PostingByID(id); !ok {
		res := api.Errorf[model.Posting]("could not update posting: %d not known", id)
		h.notify.Error(res.Message, "")
		return res
	}

	res := h.gw.Get(ctx, id)
	if !res.Successful() {
		h.notify.Error(res.Message, "")
		return res
	}
	posting := res.Data
	apply(&posting)

	op := beginOptimistic(&h.mu, &h.local)
	op.apply(func(current []model.Posting) []model.Posting {
		return replacePosting(current, id, posting)
	})

	updated := h.gw.Update(ctx, posting)
	if !updated.Successful() {
		op.revert()
		h.notify.Error(updated.Message, "")
		return updated
	}

	h.postings.Update(func(current []model.Posting) []model.Posting {
		return replacePosting(current, id, updated.Data)
	})
	return updated
}

// replacePosting substitutes the element with the given id, keeping its
// index; an unknown id appends.
func replacePosting(postings []model.Posting, id int, posting model.Posting) []model.Posting {
	next := make([]model.Posting, len(postings))
	copy(next, postings)
	for i := range next {
		if next[i].ID != nil && *next[i].ID == id {
			next[i] = posting
			return next
		}
	}
	return append(next, posting)
}
