package review

import (
	"context"
	"log/slog"
	"sync"

	"github.com/abhisek/dsamentor/internal/llm"
)

// Service runs mentor reviews. Reviews only ever add to an analysis; a
// failed or dropped review leaves the snapshot as it was.
type Service struct {
	reviewer *Reviewer
	logger   *slog.Logger
	pending  chan reviewJob
	done     chan struct{}
	once     sync.Once
}

type reviewJob struct {
	ctx context.Context
	req *Request
	cb  func(*Review, error)
}

// NewService creates a review service. If provider is nil the service is
// disabled: Review returns ErrDisabled and Request is a no-op.
func NewService(provider llm.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		logger:  logger,
		pending: make(chan reviewJob, 8),
		done:    make(chan struct{}),
	}
	if provider != nil {
		s.reviewer = NewReviewer(provider, DefaultReviewerConfig())
		go s.processLoop()
	} else {
		close(s.done)
	}
	return s
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool { return s.reviewer != nil }

// Review runs a review synchronously.
func (s *Service) Review(ctx context.Context, req *Request) (*Review, error) {
	if s.reviewer == nil {
		return nil, ErrDisabled
	}
	if req == nil {
		return nil, ErrNothingToReview
	}
	return s.reviewer.Review(ctx, req)
}

// Request queues a review and returns immediately. cb is called from the
// service goroutine. When the queue is full the request is dropped and
// Request returns false.
func (s *Service) Request(ctx context.Context, req *Request, cb func(*Review, error)) bool {
	if s.reviewer == nil || req == nil {
		return false
	}
	select {
	case s.pending <- reviewJob{ctx: ctx, req: req, cb: cb}:
		return true
	default:
		s.logger.Debug("review queue full, dropping request", "snapshot_id", req.SnapshotID)
		return false
	}
}

func (s *Service) processLoop() {
	defer close(s.done)
	for job := range s.pending {
		if job.ctx.Err() != nil {
			continue
		}
		result, err := s.reviewer.Review(job.ctx, job.req)
		if err != nil {
			s.logger.Warn("mentor review failed", "snapshot_id", job.req.SnapshotID, "error", err)
		}
		if job.cb != nil {
			job.cb(result, err)
		}
	}
}

// Close stops the processing loop after queued reviews finish. Request
// must not be called after Close.
func (s *Service) Close() {
	s.once.Do(func() {
		if s.reviewer != nil {
			close(s.pending)
		}
	})
	<-s.done
}
