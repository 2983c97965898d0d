package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	"github.com/campusbites/canteen/internal/domain/model"
	testhelpers "github.com/campusbites/canteen/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func session(id string, age time.Duration) model.Payment {
	sid := id
	return model.Payment{
		ID:               1,
		OrderID:          1,
		Status:           model.PaymentStatusPending,
		GatewaySessionID: &sid,
		CreatedAt:        time.Now().Add(-age),
	}
}

func TestNewReconcilerDefaults(t *testing.T) {
	rec := NewReconciler(&testhelpers.ReconcilerFacadeStub{}, time.Second, 0, 0, discardLogger())
	if rec.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", rec.batchSize)
	}
	if rec.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", rec.workers)
	}
}

func TestReconcilerCompletesPaidSessions(t *testing.T) {
	facade := &testhelpers.ReconcilerFacadeStub{
		Sessions: [][]model.Payment{{session("cs_1", time.Minute)}},
	}
	rec := NewReconciler(facade, 10*time.Millisecond, 1, 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		done := len(facade.Completed) > 0
		facade.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for reconciliation")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rec.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Completed) != 1 || facade.Completed[0] != "cs_1" {
		t.Fatalf("unexpected completions: %v", facade.Completed)
	}
	if len(facade.Failed) != 0 {
		t.Fatalf("unexpected failures: %v", facade.Failed)
	}
}

func TestReconcilerFailsExpiredUnpaidSessions(t *testing.T) {
	facade := &testhelpers.ReconcilerFacadeStub{
		Sessions: [][]model.Payment{{session("cs_old", 25*time.Hour)}},
		FetchFn: func(_ context.Context, id string) (*stripegw.SessionStatus, error) {
			return &stripegw.SessionStatus{ID: id, Paid: false}, nil
		},
	}
	rec := NewReconciler(facade, 10*time.Millisecond, 1, 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		done := len(facade.Failed) > 0
		facade.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for expiry handling")
		case <-time.After(10 * time.Millisecond):
		}
	}

	rec.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Failed) != 1 || facade.Failed[0] != "cs_old" {
		t.Fatalf("unexpected failures: %v", facade.Failed)
	}
	if len(facade.Completed) != 0 {
		t.Fatalf("unexpected completions: %v", facade.Completed)
	}
}

func TestReconcilerLeavesFreshUnpaidSessions(t *testing.T) {
	facade := &testhelpers.ReconcilerFacadeStub{
		Sessions: [][]model.Payment{{session("cs_new", time.Minute)}},
		FetchFn: func(_ context.Context, id string) (*stripegw.SessionStatus, error) {
			return &stripegw.SessionStatus{ID: id, Paid: false}, nil
		},
	}
	rec := NewReconciler(facade, 10*time.Millisecond, 1, 1, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)
	time.Sleep(100 * time.Millisecond)
	rec.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Completed) != 0 || len(facade.Failed) != 0 {
		t.Fatalf("fresh unpaid session must stay pending: completed=%v failed=%v", facade.Completed, facade.Failed)
	}
}
