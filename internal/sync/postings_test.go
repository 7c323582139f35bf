package sync

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

// fakePostingsGateway answers each operation from a function field; unset
// fields fail the test if called.
type fakePostingsGateway struct {
	t        *testing.T
	get      func(id int) api.Result[model.Posting]
	refresh  func(sourceID *int) api.Result[[]model.Posting]
	unread   func() api.Result[[]model.Posting]
	marked   func() api.Result[[]model.Posting]
	list     func(sourceID *int, read *bool) api.Result[[]model.Posting]
	markRead func(ids []int) api.Result[struct{}]
	update   func(p model.Posting) api.Result[model.Posting]
}

func (f *fakePostingsGateway) Get(_ context.Context, id int) api.Result[model.Posting] {
	if f.get == nil {
		f.t.Fatal("unexpected Get call")
	}
	return f.get(id)
}

func (f *fakePostingsGateway) Refresh(_ context.Context, sourceID *int) api.Result[[]model.Posting] {
	if f.refresh == nil {
		f.t.Fatal("unexpected Refresh call")
	}
	return f.refresh(sourceID)
}

func (f *fakePostingsGateway) Unread(_ context.Context) api.Result[[]model.Posting] {
	if f.unread == nil {
		f.t.Fatal("unexpected Unread call")
	}
	return f.unread()
}

func (f *fakePostingsGateway) Bookmarked(_ context.Context) api.Result[[]model.Posting] {
	if f.marked == nil {
		f.t.Fatal("unexpected Bookmarked call")
	}
	return f.marked()
}

func (f *fakePostingsGateway) List(_ context.Context, sourceID *int, read *bool) api.Result[[]model.Posting] {
	if f.list == nil {
		f.t.Fatal("unexpected List call")
	}
	return f.list(sourceID, read)
}

func (f *fakePostingsGateway) MarkRead(_ context.Context, ids []int) api.Result[struct{}] {
	if f.markRead == nil {
		f.t.Fatal("unexpected MarkRead call")
	}
	return f.markRead(ids)
}

func (f *fakePostingsGateway) Update(_ context.Context, p model.Posting) api.Result[model.Posting] {
	if f.update == nil {
		f.t.Fatal("unexpected Update call")
	}
	return f.update(p)
}

func posting(id int, title string) model.Posting {
	return model.Posting{ID: model.IntPtr(id), Title: title, CreatedAt: time.Now()}
}

func TestRefreshCachedReplacesCollection(t *testing.T) {
	reg := store.NewRegistry()
	reg.Postings.Set([]model.Posting{posting(1, "old")})

	fresh := []model.Posting{posting(2, "a"), posting(3, "b")}
	gw := &fakePostingsGateway{t: t, unread: func() api.Result[[]model.Posting] {
		return api.Success(fresh)
	}}
	h := NewPostingsHandler(reg, gw)
	defer h.Close()

	res := h.Refresh(context.Background(), true, nil)
	if !res.Successful() {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if !reflect.DeepEqual(reg.Postings.Get(), fresh) {
		t.Errorf("store should hold exactly the response, got %+v", reg.Postings.Get())
	}
}

func TestRefreshFailureLeavesStoreUntouched(t *testing.T) {
	before := []model.Posting{posting(1, "keep")}
	reg := store.NewRegistry()
	reg.Postings.Set(before)

	gw := &fakePostingsGateway{t: t, unread: func() api.Result[[]model.Posting] {
		return api.Errorf[[]model.Posting]("could not get unread postings: 500")
	}}
	h := NewPostingsHandler(reg, gw)
	defer h.Close()

	res := h.Refresh(context.Background(), true, nil)
	if res.Successful() {
		t.Fatal("expected error result")
	}
	if !reflect.DeepEqual(reg.Postings.Get(), before) {
		t.Errorf("store changed on failure: %+v", reg.Postings.Get())
	}
}

func TestRefreshWithSourceDelegatesToReadList(t *testing.T) {
	reg := store.NewRegistry()

	var gotSource *int
	var gotRead *bool
	gw := &fakePostingsGateway{t: t, list: func(sourceID *int, read *bool) api.Result[[]model.Posting] {
		gotSource, gotRead = sourceID, read
		return api.Success([]model.Posting{})
	}}
	h := NewPostingsHandler(reg, gw)
	defer h.Close()

	sourceID := 4
	h.Refresh(context.Background(), true, &sourceID)

	if gotSource == nil || *gotSource != 4 {
		t.Errorf("expected source filter 4, got %v", gotSource)
	}
	if gotRead == nil || !*gotRead {
		t.Errorf("expected read=true filter, got %v", gotRead)
	}
}

func TestRefreshUncachedRescapes(t *testing.T) {
	reg := store.NewRegistry()

	scraped := []model.Posting{posting(8, "new")}
	gw := &fakePostingsGateway{t: t, refresh: func(sourceID *int) api.Result[[]model.Posting] {
		return api.Success(scraped)
	}}
	h := NewPostingsHandler(reg, gw)
	defer h.Close()

	res := h.Refresh(context.Background(), false, nil)
	if !res.Successful() {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if !reflect.DeepEqual(reg.Postings.Get(), scraped) {
		t.Errorf("store should hold the scrape result, got %+v", reg.Postings.Get())
	}
}

func TestMarkAsReadOnlyTouchesGivenIDs(t *testing.T) {
	reg := store.NewRegistry()
	reg.Postings.Set([]model.Posting{posting(3, "a"), posting(4, "b"), posting(5, "c")})

	gw := &fakePostingsGateway{t: t, markRead: func(ids []int) api.Result[struct{}] {
		return api.Success(struct{}{})
	}}
	h := NewPostingsHandler(reg, gw)
	defer h.Close()

	res := h.MarkAsRead(context.Background(), []int{3, 4})
	if !res.Successful() {
		t.Fatalf("expected success, got %q", res.Message)
	}

	got := reg.Postings.Get()
	if !got[0].Seen || !got[1].Seen {
		t.Error("postings 3 and 4 should be seen")
	}
	if got[2].Seen {
		t.Error("posting 5 must be unchanged")
	}
}

func TestMarkAsReadFailureLeavesStoreUntouched(t *testing.T) {
	before := []model.Posting{posting(3, "a")}
	reg := store.NewRegistry()
	reg.Postings.Set(before)

	gw := &fakePostingsGateway{t: t, markRead: func(ids []int) api.Result[struct{}] {
		return api.Errorf[struct{}]("cannot mark postings as read: 500")
	}}
	h := NewPostingsHandler(reg, gw)
	defer h.Close()

	if res := h.MarkAsRead(context.Background(), []int{3}); res.Successful() {
		t.Fatal("expected error result")
	}
	if !reflect.DeepEqual(reg.Postings.Get(), before) {
		t.Errorf("store changed on failure: %+v", reg.Postings.Get())
	}
}

func TestBookmarkTogglesAuthoritativeCopy(t *testing.T) {
	reg := store.NewRegistry()
	// local copy is stale on purpose: the server copy has another title
	reg.Postings.Set([]model.Posting{posting(1, "a"), posting(9, "stale"), posting(2, "c")})

	server := posting(9, "fresh")
	gw := &fakePostingsGateway{
		t:   t,
		get: func(id int) api.Result[model.Posting] { return api.Success(server) },
		update: func(p model.Posting) api.Result[model.Posting] {
			if !p.Bookmarked {
				t.Error("expected bookmark toggled on")
			}
			return api.Success(p)
		},
	}
	h := NewPostingsHandler(reg, gw)
	defer h.Close()

	res := h.Bookmark(context.Background(), 9)
	if !res.Successful() {
		t.Fatalf("expected success, got %q", res.Message)
	}

	got := reg.Postings.Get()
	if got[1].ID == nil || *got[1].ID != 9 || !got[1].Bookmarked || got[1].Title != "fresh" {
		t.Errorf("expected server copy spliced at index 1, got %+v", got[1])
	}
	if got[0].Title != "a" || got[2].Title != "c" {
		t.Error("neighbors must be unchanged")
	}
}

func TestBookmarkFailureRollsBack(t *testing.T) {
	before := []model.Posting{posting(9, "a")}
	reg := store.NewRegistry()
	reg.Postings.Set(before)

	gw := &fakePostingsGateway{
		t:   t,
		get: func(id int) api.Result[model.Posting] { return api.Success(before[0]) },
		update: func(p model.Posting) api.Result[model.Posting] {
			return api.Errorf[model.Posting]("could not update posting: 500")
		},
	}
	h := NewPostingsHandler(reg, gw)
	defer h.Close()

	res := h.Bookmark(context.Background(), 9)
	if res.Successful() {
		t.Fatal("expected error result")
	}
	if !reflect.DeepEqual(reg.Postings.Get(), before) {
		t.Errorf("store changed on failure: %+v", reg.Postings.Get())
	}
	if got := h.Postings(); !reflect.DeepEqual(got, before) {
		t.Errorf("working copy not reverted: %+v", got)
	}
}

func TestBookmarkUnknownPostingSynthesizesError(t *testing.T) {
	reg := store.NewRegistry()
	h := NewPostingsHandler(reg, &fakePostingsGateway{t: t})
	defer h.Close()

	res := h.Bookmark(context.Background(), 42)
	if res.Successful() {
		t.Fatal("expected error result for unknown posting")
	}
}

// likeServer keeps one posting server-side so consecutive toggles observe
// each other's committed state.
type likeServer struct {
	posting model.Posting
}

func (s *likeServer) gateway(t *testing.T) *fakePostingsGateway {
	return &fakePostingsGateway{
		t:   t,
		get: func(id int) api.Result[model.Posting] { return api.Success(s.posting) },
		update: func(p model.Posting) api.Result[model.Posting] {
			s.posting = p
			return api.Success(p)
		},
	}
}

func TestLikeTwiceResetsToNeutral(t *testing.T) {
	srv := &likeServer{posting: posting(5, "a")}
	reg := store.NewRegistry()
	reg.Postings.Set([]model.Posting{srv.posting})

	h := NewPostingsHandler(reg, srv.gateway(t))
	defer h.Close()

	res := h.Like(context.Background(), 5)
	if !res.Successful() || res.Data.IsMatch == nil || !*res.Data.IsMatch {
		t.Fatalf("first like should set the flag, got %+v", res.Data.IsMatch)
	}

	res = h.Like(context.Background(), 5)
	if !res.Successful() || res.Data.IsMatch != nil {
		t.Fatalf("second like should reset to neutral, got %+v", res.Data.IsMatch)
	}
}

func TestLikeThenDislike(t *testing.T) {
	srv := &likeServer{posting: posting(5, "a")}
	reg := store.NewRegistry()
	reg.Postings.Set([]model.Posting{srv.posting})

	h := NewPostingsHandler(reg, srv.gateway(t))
	defer h.Close()

	h.Like(context.Background(), 5)
	res := h.Dislike(context.Background(), 5)
	if !res.Successful() || res.Data.IsMatch == nil || *res.Data.IsMatch {
		t.Fatalf("dislike after like should set the flag false, got %+v", res.Data.IsMatch)
	}
}

func TestTodaysPostings(t *testing.T) {
	reg := store.NewRegistry()
	old := posting(1, "old")
	old.CreatedAt = time.Now().AddDate(0, 0, -2)
	today := posting(2, "today")
	reg.Postings.Set([]model.Posting{old, today})

	h := NewPostingsHandler(reg, &fakePostingsGateway{t: t})
	defer h.Close()

	got := h.TodaysPostings()
	if len(got) != 1 || got[0].Title != "today" {
		t.Errorf("expected only today's posting, got %+v", got)
	}
}

func TestPostingsBySourcePartitions(t *testing.T) {
	reg := store.NewRegistry()
	a := posting(1, "a")
	a.SourceID = model.IntPtr(10)
	b := posting(2, "b")
	b.SourceID = model.IntPtr(10)
	c := posting(3, "c")
	c.SourceID = model.IntPtr(20)
	d := posting(4, "d") // no source
	reg.Postings.Set([]model.Posting{a, b, c, d})

	h := NewPostingsHandler(reg, &fakePostingsGateway{t: t})
	defer h.Close()

	groups := h.PostingsBySource()
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	if total != 4 {
		t.Errorf("partition must cover all postings, got %d", total)
	}
	if len(groups[10]) != 2 || len(groups[20]) != 1 || len(groups[0]) != 1 {
		t.Errorf("unexpected partition: %+v", groups)
	}
	if groups[10][0].Title != "a" || groups[10][1].Title != "b" {
		t.Error("group must preserve collection order")
	}
}

func TestGetBookmarkedDoesNotTouchStore(t *testing.T) {
	before := []model.Posting{posting(1, "keep")}
	reg := store.NewRegistry()
	reg.Postings.Set(before)

	gw := &fakePostingsGateway{t: t, marked: func() api.Result[[]model.Posting] {
		return api.Success([]model.Posting{posting(2, "marked")})
	}}
	h := NewPostingsHandler(reg, gw)
	defer h.Close()

	res := h.GetBookmarked(context.Background())
	if !res.Successful() || len(res.Data) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !reflect.DeepEqual(reg.Postings.Get(), before) {
		t.Error("bookmarked fetch must not replace the store")
	}
}
