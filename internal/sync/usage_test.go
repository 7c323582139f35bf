package sync

import (
	"context"
	"testing"

	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/store"
)

type fakeUsageGateway struct {
	cost func(days *int) api.Result[[]model.Usage]
}

func (f *fakeUsageGateway) Cost(_ context.Context, days *int) api.Result[[]model.Usage] {
	return f.cost(days)
}

func TestUsageCostPassesDays(t *testing.T) {
	reg := store.NewRegistry()
	var gotDays *int
	gw := &fakeUsageGateway{cost: func(days *int) api.Result[[]model.Usage] {
		gotDays = days
		return api.Success([]model.Usage{{SourceName: "Acme", Cost: 1.5}})
	}}
	h := NewUsageHandler(reg, gw)

	days := 7
	res := h.GetUsageCost(context.Background(), &days)
	if !res.Successful() || res.Data[0].Cost != 1.5 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotDays == nil || *gotDays != 7 {
		t.Errorf("expected days filter 7, got %v", gotDays)
	}
}

func TestUsageFailureNotifies(t *testing.T) {
	reg := store.NewRegistry()
	gw := &fakeUsageGateway{cost: func(days *int) api.Result[[]model.Usage] {
		return api.Errorf[[]model.Usage]("could not get usage: 500")
	}}
	h := NewUsageHandler(reg, gw)

	if res := h.GetUsageCost(context.Background(), nil); res.Successful() {
		t.Fatal("expected error result")
	}
	if len(reg.Notifications.Get()) != 1 {
		t.Error("expected an error notification")
	}
}
