package sync

import (
	"context"
	"reflect"
	"testing"

	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

type fakeSuggestionsGateway struct {
	t         *testing.T
	list      func() api.Result[[]model.Suggestion]
	forSource func(id int) api.Result[[]model.Suggestion]
	refresh   func(id int) api.Result[[]model.Suggestion]
}

func (f *fakeSuggestionsGateway) List(_ context.Context) api.Result[[]model.Suggestion] {
	if f.list == nil {
		f.t.Fatal("unexpected List call")
	}
	return f.list()
}

func (f *fakeSuggestionsGateway) ForSource(_ context.Context, id int) api.Result[[]model.Suggestion] {
	if f.forSource == nil {
		f.t.Fatal("unexpected ForSource call")
	}
	return f.forSource(id)
}

func (f *fakeSuggestionsGateway) Refresh(_ context.Context, id int) api.Result[[]model.Suggestion] {
	if f.refresh == nil {
		f.t.Fatal("unexpected Refresh call")
	}
	return f.refresh(id)
}

func TestSuggestionsCommitOnSuccess(t *testing.T) {
	reg := store.NewRegistry()
	fresh := []model.Suggestion{{ID: model.IntPtr(1), Name: "Beta", URL: "https://beta.example"}}
	gw := &fakeSuggestionsGateway{t: t, list: func() api.Result[[]model.Suggestion] {
		return api.Success(fresh)
	}}
	h := NewSuggestionsHandler(reg, gw)

	res := h.GetSuggestions(context.Background())
	if !res.Successful() {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if !reflect.DeepEqual(h.Suggestions(), fresh) {
		t.Errorf("store should hold the suggestions, got %+v", h.Suggestions())
	}
}

func TestSuggestionsFailureLeavesStore(t *testing.T) {
	reg := store.NewRegistry()
	before := []model.Suggestion{{ID: model.IntPtr(1), Name: "keep"}}
	reg.Suggestions.Set(before)

	gw := &fakeSuggestionsGateway{t: t, refresh: func(id int) api.Result[[]model.Suggestion] {
		return api.Errorf[[]model.Suggestion]("could not refresh suggestions for source: 500")
	}}
	h := NewSuggestionsHandler(reg, gw)

	if res := h.RefreshSourceSuggestions(context.Background(), 4); res.Successful() {
		t.Fatal("expected error result")
	}
	if !reflect.DeepEqual(reg.Suggestions.Get(), before) {
		t.Errorf("store changed on failure: %+v", reg.Suggestions.Get())
	}
	if len(reg.Notifications.Get()) != 1 {
		t.Error("expected an error notification")
	}
}

func TestSourceSuggestionsPassesID(t *testing.T) {
	reg := store.NewRegistry()
	var gotID int
	gw := &fakeSuggestionsGateway{t: t, forSource: func(id int) api.Result[[]model.Suggestion] {
		gotID = id
		return api.Success([]model.Suggestion{})
	}}
	h := NewSuggestionsHandler(reg, gw)

	h.GetSourceSuggestions(context.Background(), 12)
	if gotID != 12 {
		t.Errorf("expected source id 12, got %d", gotID)
	}
}
