package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelops/models"

	"github.com/hibiken/asynq"
)

const TypeFolioStatement = "folio:statement"

const (
	statementMaxRetry = 5
	// Repeated requests for the same booking inside this window collapse into one build.
	statementUniqueFor = 2 * time.Minute
)

func NewStatementTask(payload models.StatementPayload) (*asynq.Task, []asynq.Option, error) {
	if payload.BookingID == "" {
		return nil, nil, errors.New("statement task requires a booking id")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeFolioStatement, b)
	opts := []asynq.Option{
		asynq.MaxRetry(statementMaxRetry),
		asynq.Unique(statementUniqueFor),
	}
	return task, opts, nil
}

// ParseStatementPayload decodes a statement task payload.
func ParseStatementPayload(task *asynq.Task) (models.StatementPayload, error) {
	var p models.StatementPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid statement payload: %w", err)
	}
	if p.BookingID == "" {
		return p, errors.New("invalid statement payload: missing bookingId")
	}
	return p, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqStatementQueue schedules statement builds on the asynq queue.
type AsynqStatementQueue struct {
	client Enqueuer
}

func NewAsynqStatementQueue(client Enqueuer) *AsynqStatementQueue {
	return &AsynqStatementQueue{client: client}
}

// EnqueueStatement queues a build. A build already pending for the booking is
// not an error.
func (q *AsynqStatementQueue) EnqueueStatement(ctx context.Context, payload models.StatementPayload) error {
	task, opts, err := NewStatementTask(payload)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return nil
		}
		return fmt.Errorf("enqueue statement for %s: %w", payload.BookingID, err)
	}
	return nil
}
