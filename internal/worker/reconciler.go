package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	"github.com/campusbites/canteen/internal/domain/model"
)

// Gateway sessions unpaid for this long are written off as failed.
const sessionExpiry = 24 * time.Hour

// PaymentsFacade exposes the subset of application functionality required by the reconciler.
type PaymentsFacade interface {
	PendingSessions(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error)
	FetchSession(ctx context.Context, sessionID string) (*stripegw.SessionStatus, error)
	CompleteSession(ctx context.Context, sessionID, transactionID string, response []byte) (bool, error)
	FailSession(ctx context.Context, sessionID, reason string) error
}

// Reconciler polls pending gateway sessions and converges them on the
// idempotent completion path, catching payments whose callback or webhook
// never arrived.
type Reconciler struct {
	facade       PaymentsFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade PaymentsFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Payment, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	// only sessions old enough to have missed their callback
	pending, err := r.facade.PendingSessions(ctx, r.pollInterval, r.batchSize)
	if err != nil {
		r.logger.Error("fetch pending sessions failed", slog.String("error", err.Error()))
		return
	}
	for _, payment := range pending {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- payment:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleSession(ctx, payment)
		}
	}
}

func (r *Reconciler) handleSession(ctx context.Context, payment model.Payment) {
	if payment.GatewaySessionID == nil {
		return
	}
	sessionID := *payment.GatewaySessionID

	status, err := r.facade.FetchSession(ctx, sessionID)
	if err != nil {
		r.logger.Error("gateway session fetch failed",
			slog.String("session", sessionID), slog.String("error", err.Error()))
		return
	}

	if status.Paid {
		created, err := r.facade.CompleteSession(ctx, sessionID, status.TransactionID, status.Raw)
		if err != nil {
			r.logger.Error("session completion failed",
				slog.String("session", sessionID), slog.String("error", err.Error()))
			return
		}
		if created {
			r.logger.Info("reconciled missed payment", slog.String("session", sessionID))
		}
		return
	}

	if time.Since(payment.CreatedAt) > sessionExpiry {
		if err := r.facade.FailSession(ctx, sessionID, "session expired unpaid"); err != nil {
			r.logger.Error("session fail mark failed",
				slog.String("session", sessionID), slog.String("error", err.Error()))
		}
	}
}
