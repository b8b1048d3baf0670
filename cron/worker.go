package cron

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"whenfree/config"
	blockRepo "whenfree/database/repository/block"
	"whenfree/utils"
)

const TypeBlockPrune = "blocks:prune"

const dateLayout = "2006-01-02"

// InitRetentionSweeper runs the background worker and scheduler that prune
// busy blocks whose activeUntil date has been past longer than the configured
// retention. Unbounded blocks are never touched.
func InitRetentionSweeper(repo blockRepo.BlockRepository) {
	logger := utils.GetLogger()
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBlockPrune, handlePruneTask(repo))

	go func() {
		logger.Info("retention sweeper: starting worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("retention sweeper: worker stopped", zap.Error(err))
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	if _, err := scheduler.Register("@every 24h", asynq.NewTask(TypeBlockPrune, nil)); err != nil {
		logger.Error("retention sweeper: failed to register schedule", zap.Error(err))
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("retention sweeper: scheduler stopped", zap.Error(err))
		}
	}()
}

func handlePruneTask(repo blockRepo.BlockRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		cutoff := time.Now().UTC().
			AddDate(0, 0, -config.AppConfig.BlockRetentionDays).
			Format(dateLayout)

		deleted, err := repo.DeleteExpiredBefore(ctx, cutoff)
		if err != nil {
			logger.Error("retention sweeper: prune failed", zap.String("cutoff", cutoff), zap.Error(err))
			return err
		}
		if deleted > 0 {
			logger.Info("retention sweeper: pruned expired blocks",
				zap.String("cutoff", cutoff), zap.Int64("deleted", deleted))
		}
		return nil
	}
}
