package workers

import (
	"context"
	"time"

	"github.com/seemaakh/bitefinder/domain"
	"github.com/sirupsen/logrus"
)

// orphanSweeper periodically deletes replies whose parent comment is gone.
// Cascade deletes are best-effort (no multi-document transaction), so a
// crash between the reply sweep and the parent delete can strand replies;
// this worker reconciles them.
type orphanSweeper struct {
	commentRepo domain.CommentRepository
	interval    time.Duration
}

func NewOrphanSweeper(commentRepo domain.CommentRepository, interval time.Duration) *orphanSweeper {
	return &orphanSweeper{
		commentRepo: commentRepo,
		interval:    interval,
	}
}

func (s *orphanSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down orphan sweeper, running final sweep...")
			s.sweep(context.Background())
			return
		}
	}
}

func (s *orphanSweeper) sweep(ctx context.Context) {
	n, err := s.commentRepo.DeleteOrphanReplies(ctx)
	if err != nil {
		logrus.Errorf("orphan sweep failed: %v", err)
		return
	}
	if n > 0 {
		logrus.Infof("orphan sweep removed %d stranded replies", n)
	}
}
