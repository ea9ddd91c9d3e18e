package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hiresense/internal/analysis"
	"github.com/jonathan/hiresense/internal/db"
	"github.com/jonathan/hiresense/internal/ingestion"
)

// Retry settings for downloads and saves
const (
	DefaultAttempts   = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// ErrInvalidJob is returned for messages that cannot be decoded into a Job
var ErrInvalidJob = errors.New("invalid job")

// Worker processes analysis jobs
type Worker struct {
	producer   analysis.Producer
	publisher  Publisher
	objects    ObjectStore // optional
	store      db.Store    // optional
	retryDelay time.Duration
}

// Option configures a Worker
type Option func(*Worker)

// WithObjectStore enables resume downloads
func WithObjectStore(s ObjectStore) Option {
	return func(w *Worker) { w.objects = s }
}

// WithStore saves completed analyses
func WithStore(s db.Store) Option {
	return func(w *Worker) { w.store = s }
}

// WithRetryDelay sets the base delay between retries
func WithRetryDelay(d time.Duration) Option {
	return func(w *Worker) { w.retryDelay = d }
}

// New creates a Worker that runs producer and reports progress to publisher
func New(producer analysis.Producer, publisher Publisher, opts ...Option) *Worker {
	w := &Worker{
		producer:   producer,
		publisher:  publisher,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Handle decodes one message body and processes it
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	return w.Process(ctx, job)
}

// Process runs one job: download the resume, analyze, save and publish the outcome.
// A failed download degrades to the inline resume text. The analysis ID is the job ID.
func (w *Worker) Process(ctx context.Context, job Job) error {
	id, err := uuid.Parse(job.ID)
	if err != nil {
		id = uuid.New()
		slog.Warn("job has no valid id, assigned one", slog.String("job_id", job.ID), slog.String("id", id.String()))
	}
	job.ID = id.String()
	logger := slog.With(slog.String("analysis_id", job.ID))

	w.publish(ctx, Update{AnalysisID: job.ID, Status: StatusProcessing, Message: "analysis started"})

	req := job.Request()
	if text := w.resumeText(ctx, job); text != "" {
		req.ResumeText = text
	}

	resp := analysis.Run(ctx, w.producer, req)
	if !resp.Success {
		logger.Warn("analysis failed", slog.String("error", resp.Error))
		w.publish(ctx, Update{AnalysisID: job.ID, Status: StatusFailed, Message: resp.Error})
		return fmt.Errorf("analysis %s failed: %s", job.ID, resp.Error)
	}
	resp.ID = id

	if w.store != nil {
		_, err := retry(ctx, DefaultAttempts, w.retryDelay, func() (struct{}, error) {
			return struct{}{}, w.store.Save(ctx, req.Trimmed(), resp)
		})
		if err != nil {
			logger.Error("failed to save analysis", slog.Any("error", err))
			w.publish(ctx, Update{AnalysisID: job.ID, Status: StatusFailed, Message: "failed to save analysis"})
			return fmt.Errorf("failed to save analysis %s: %w", job.ID, err)
		}
	}

	w.publish(ctx, Update{
		AnalysisID:   job.ID,
		Status:       StatusCompleted,
		Message:      "analysis completed",
		Source:       resp.Source,
		OverallScore: resp.Data.CareerReadiness.OverallScore,
	})
	logger.Info("analysis completed", slog.String("source", resp.Source))
	return nil
}

// resumeText downloads and extracts the job's resume object, or returns ""
func (w *Worker) resumeText(ctx context.Context, job Job) string {
	if job.ResumeObjectKey == "" {
		return ""
	}
	if w.objects == nil {
		slog.Warn("job references a resume object but no object store is configured",
			slog.String("analysis_id", job.ID))
		return ""
	}

	data, err := retry(ctx, DefaultAttempts, w.retryDelay, func() ([]byte, error) {
		return w.objects.Download(ctx, job.ResumeObjectKey)
	})
	if err != nil {
		slog.Warn("failed to download resume",
			slog.String("analysis_id", job.ID),
			slog.String("key", job.ResumeObjectKey),
			slog.Any("error", err))
		return ""
	}

	name := job.ResumeFilename
	if name == "" {
		name = path.Base(job.ResumeObjectKey)
	}
	return ingestion.Extract(ctx, name, data)
}

func (w *Worker) publish(ctx context.Context, u Update) {
	u.Timestamp = time.Now().UTC()
	if err := w.publisher.Publish(ctx, u); err != nil {
		slog.Warn("failed to publish update",
			slog.String("analysis_id", u.AnalysisID),
			slog.String("status", u.Status),
			slog.Any("error", err))
	}
}

// Run starts a pool of n consumers on amqpURL and blocks until ctx is done or a consumer fails
func (w *Worker) Run(ctx context.Context, amqpURL string, n int) error {
	if n < 1 {
		n = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			slog.Info("consumer started", slog.Int("consumer", i+1))
			return w.consume(gCtx, i, amqpURL)
		})
	}
	return g.Wait()
}

func (w *Worker) consume(ctx context.Context, id int, amqpURL string) error {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		QueueName, // queue name
		true,      // durable (survives broker restarts)
		false,     // auto-delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	msgs, err := ch.Consume(
		QueueName,
		fmt.Sprintf("hiresense-worker-%d", id+1), // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("error consuming from %s: %w", QueueName, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("consumer %d: delivery channel closed", id+1)
			}
			w.deliver(ctx, msg)
		}
	}
}

// deliver processes one delivery. Undecodable messages are rejected without requeue;
// everything else is acked because failures are reported on the updates exchange.
func (w *Worker) deliver(ctx context.Context, msg amqp.Delivery) {
	err := w.Handle(ctx, msg.Body)
	switch {
	case errors.Is(err, ErrInvalidJob):
		slog.Warn("rejecting message", slog.Any("error", err))
		_ = msg.Nack(false, false)
	case err != nil:
		slog.Warn("job failed", slog.Any("error", err))
		_ = msg.Ack(false)
	default:
		_ = msg.Ack(false)
	}
}
