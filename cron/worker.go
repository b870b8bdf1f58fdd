package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelops/config"
	"hotelops/models"
	"hotelops/services/folio"
	"hotelops/services/storage"
	"hotelops/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const statementFolder = "statements"

// FolioReader builds the folio a statement is rendered from.
type FolioReader interface {
	GetFolio(ctx context.Context, bookingID string, asOf time.Time) (*models.Folio, error)
}

// StatementRecorder stores the delivered statement ID on the booking.
type StatementRecorder interface {
	SetStatementID(ctx context.Context, bookingID, publicID string) error
}

// Uploader stores the rendered workbook.
type Uploader interface {
	UploadBytes(ctx context.Context, name, folder string, data []byte) (*storage.UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// StatementNotifier tells the guest the statement can be downloaded.
type StatementNotifier interface {
	NotifyStatementReady(ctx context.Context, booking models.Booking) error
}

// StatementProcessor handles folio:statement tasks.
type StatementProcessor struct {
	Folios   FolioReader
	Recorder StatementRecorder
	Storage  Uploader
	Notifier StatementNotifier
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewStatementProcessor(folios FolioReader, recorder StatementRecorder, store Uploader, notifier StatementNotifier, logger *zap.Logger) *StatementProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatementProcessor{
		Folios:   folios,
		Recorder: recorder,
		Storage:  store,
		Notifier: notifier,
		Logger:   logger,
		Now:      time.Now,
	}
}

// ProcessTask builds the statement, uploads it, records its ID and pushes the
// guest. Bad payloads and unknown bookings are not retried.
func (p *StatementProcessor) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := tasks.ParseStatementPayload(task)
	if err != nil {
		p.Logger.Error("statement task rejected", zap.Error(err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	log := p.Logger.With(zap.String("bookingId", payload.BookingID), zap.String("requestedBy", payload.RequestedBy))

	f, err := p.Folios.GetFolio(ctx, payload.BookingID, p.Now())
	if err != nil {
		if errors.Is(err, folio.ErrBookingNotFound) {
			log.Warn("statement requested for unknown booking")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("build folio: %w", err)
	}

	data, err := folio.ExportStatement(f)
	if err != nil {
		return err
	}
	uploaded, err := p.Storage.UploadBytes(ctx, folio.StatementFileName(payload.BookingID), statementFolder, data)
	if err != nil {
		return err
	}
	if err := p.Recorder.SetStatementID(ctx, payload.BookingID, uploaded.PublicID); err != nil {
		if delErr := p.Storage.DeleteFile(ctx, uploaded.PublicID); delErr != nil {
			log.Warn("failed to remove orphaned statement", zap.String("publicId", uploaded.PublicID), zap.Error(delErr))
		}
		return fmt.Errorf("record statement id: %w", err)
	}

	if p.Notifier != nil {
		if err := p.Notifier.NotifyStatementReady(ctx, f.Booking); err != nil {
			log.Warn("statement ready push failed", zap.Error(err))
		}
	}
	log.Info("folio statement delivered", zap.String("publicId", uploaded.PublicID), zap.Int("bytes", len(data)))
	return nil
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns the asynq client used to enqueue statement builds.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// InitStatementWorker runs the async worker in background and returns the
// server so it can be shut down.
func InitStatementWorker(proc *StatementProcessor, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeFolioStatement, proc)

	go monitorRedisConnection(logger)

	go func() {
		logger.Info("starting statement worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("statement worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("statement worker gave up after max retry attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

// monitorRedisConnection pings the queue database periodically to detect failures at runtime.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("queue redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
