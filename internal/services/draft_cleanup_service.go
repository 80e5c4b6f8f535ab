package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/gustavowmarques/work-logix-v2/internal/constants"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// DraftCleanupService sweeps expired unit-provisioning drafts on a cron
// schedule so abandoned onboarding flows don't accumulate.
type DraftCleanupService struct {
	draftRepo repositories.UnitDraftRepository
	cron      *cron.Cron
	now       func() time.Time
}

func NewDraftCleanupService(draftRepo repositories.UnitDraftRepository) *DraftCleanupService {
	return &DraftCleanupService{
		draftRepo: draftRepo,
		cron:      cron.New(),
		now:       time.Now,
	}
}

// Start registers the sweep and starts the scheduler. Call Stop on
// shutdown.
func (s *DraftCleanupService) Start() error {
	_, err := s.cron.AddFunc(constants.DraftSweepSchedule, func() {
		s.SweepOnce(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	utils.Logger.WithField("schedule", constants.DraftSweepSchedule).Info("draft cleanup scheduler started")
	return nil
}

func (s *DraftCleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// SweepOnce deletes drafts whose expiry has passed. Safe to call
// directly; the scheduler uses it too.
func (s *DraftCleanupService) SweepOnce(ctx context.Context) {
	deleted, err := s.draftRepo.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		utils.Logger.WithError(err).Error("draft sweep failed")
		return
	}
	if deleted > 0 {
		utils.Logger.WithFields(logrus.Fields{"deleted": deleted}).Info("swept expired unit drafts")
	}
}
