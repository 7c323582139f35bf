package tui

import (
	"testing"
	"time"

	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
	scoutsync "github.com/user/scout/internal/sync"
)

func newTestModel(t *testing.T) appModel {
	t.Helper()
	reg := store.NewRegistry()
	handlers := &scoutsync.Handlers{
		Notifications: scoutsync.NewNotificationHandler(reg.Notifications),
	}
	return initialModel(handlers)
}

func TestInitialSelectionIsAll(t *testing.T) {
	m := newTestModel(t)
	if m.selected != model.SelectAll {
		t.Errorf("expected initial selection %q, got %q", model.SelectAll, m.selected)
	}
}

func TestNextSelectionCycles(t *testing.T) {
	m := newTestModel(t)
	m.sources = []model.Source{{ID: model.IntPtr(7), Name: "Acme"}}

	m.selected = model.SelectAll
	if next := m.nextSelection(); next != model.SelectToday {
		t.Errorf("expected today after all, got %q", next)
	}

	m.selected = model.SelectBookmarked
	if next := m.nextSelection(); next != model.SelectSourceID(7) {
		t.Errorf("expected source 7 after bookmarked, got %q", next)
	}

	m.selected = model.SelectSourceID(7)
	if next := m.nextSelection(); next != model.SelectAll {
		t.Errorf("expected wrap to all, got %q", next)
	}
}

func TestVisiblePostingsBySource(t *testing.T) {
	m := newTestModel(t)
	a := model.Posting{ID: model.IntPtr(1), Title: "a", SourceID: model.IntPtr(7), CreatedAt: time.Now()}
	b := model.Posting{ID: model.IntPtr(2), Title: "b", SourceID: model.IntPtr(8), CreatedAt: time.Now()}
	m.postings = []model.Posting{a, b}
	m.selected = model.SelectSourceID(8)

	got := m.visiblePostings()
	if len(got) != 1 || got[0].Title != "b" {
		t.Errorf("expected only source 8 postings, got %+v", got)
	}
}

func TestVisiblePostingsBookmarked(t *testing.T) {
	m := newTestModel(t)
	a := model.Posting{ID: model.IntPtr(1), Title: "a", Bookmarked: true}
	b := model.Posting{ID: model.IntPtr(2), Title: "b"}
	m.postings = []model.Posting{a, b}
	m.selected = model.SelectBookmarked

	got := m.visiblePostings()
	if len(got) != 1 || !got[0].Bookmarked {
		t.Errorf("expected only bookmarked postings, got %+v", got)
	}
}

func TestPostingItemMarks(t *testing.T) {
	p := model.Posting{Title: "dev", Bookmarked: true, IsMatch: model.BoolPtr(true)}
	item := postingItem{posting: p}
	if got := item.Title(); got != "*#+ dev" {
		t.Errorf("unexpected title %q", got)
	}
}

func TestSourceName(t *testing.T) {
	m := newTestModel(t)
	m.sources = []model.Source{{ID: model.IntPtr(3), Name: "Acme"}}

	if got := m.sourceName(model.IntPtr(3)); got != "Acme" {
		t.Errorf("expected Acme, got %q", got)
	}
	if got := m.sourceName(nil); got != "" {
		t.Errorf("expected empty name for nil id, got %q", got)
	}
}
