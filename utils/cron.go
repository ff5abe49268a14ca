package utils

import (
	"time"

	"github.com/partyup/matchmaking_backend/services"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StalePartyAge is how long a party may sit untouched, with no members
// besides its owner, before the daily cleaner removes it.
const StalePartyAge = 14 * 24 * time.Hour

// CronCleaner schedules the daily purge of abandoned parties. Chat logs are
// archived before the rows go away.
func CronCleaner(parties *services.PartyService, logger *zap.Logger) *cron.Cron {
	c := cron.New()

	c.AddFunc("@daily", func() {
		purged, err := parties.PurgeAbandoned(StalePartyAge)
		if err != nil {
			logger.Error("stale party purge failed", zap.Error(err))
			return
		}
		if purged > 0 {
			logger.Info("purged abandoned parties", zap.Int("count", purged))
		}
	})

	c.Start()
	return c
}
