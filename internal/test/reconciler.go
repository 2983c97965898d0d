package test

import (
	"context"
	"sync"
	"time"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	"github.com/campusbites/canteen/internal/domain/model"
)

// ReconcilerFacadeStub drives the reconciliation worker in tests. Each poll
// pops the next batch from Sessions.
type ReconcilerFacadeStub struct {
	sync.Mutex

	Sessions [][]model.Payment
	FetchFn  func(context.Context, string) (*stripegw.SessionStatus, error)

	Completed []string
	Failed    []string
}

func (s *ReconcilerFacadeStub) PendingSessions(_ context.Context, _ time.Duration, _ int) ([]model.Payment, error) {
	s.Lock()
	defer s.Unlock()
	if len(s.Sessions) == 0 {
		return nil, nil
	}
	batch := s.Sessions[0]
	s.Sessions = s.Sessions[1:]
	return batch, nil
}

func (s *ReconcilerFacadeStub) FetchSession(ctx context.Context, sessionID string) (*stripegw.SessionStatus, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, sessionID)
	}
	return &stripegw.SessionStatus{ID: sessionID, Paid: true, TransactionID: "pi_stub"}, nil
}

func (s *ReconcilerFacadeStub) CompleteSession(_ context.Context, sessionID, _ string, _ []byte) (bool, error) {
	s.Lock()
	defer s.Unlock()
	for _, done := range s.Completed {
		if done == sessionID {
			return false, nil
		}
	}
	s.Completed = append(s.Completed, sessionID)
	return true, nil
}

func (s *ReconcilerFacadeStub) FailSession(_ context.Context, sessionID, _ string) error {
	s.Lock()
	defer s.Unlock()
	s.Failed = append(s.Failed, sessionID)
	return nil
}
