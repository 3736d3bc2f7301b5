package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/integration/email/templates"
)

type fakeQueue struct {
	jobs map[uuid.UUID]*entity.EmailJob
}

func newFakeQueue(jobs ...*entity.EmailJob) *fakeQueue {
	q := &fakeQueue{jobs: map[uuid.UUID]*entity.EmailJob{}}
	for _, job := range jobs {
		q.jobs[job.ID] = job
	}
	return q
}

func (q *fakeQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *fakeQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	var pending []*entity.EmailJob
	now := time.Now().UTC()
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			pending = append(pending, job)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (q *fakeQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *fakeQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	return q.jobs[id], nil
}

func (q *fakeQueue) DeleteOldSentJobs(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

type fakeSender struct {
	sent    []adapter.SendEmailInput
	sendErr error
}

func (s *fakeSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ProviderID: "provider-msg-1"}, nil
}

var (
	_ adapter.EmailQueueRepository = (*fakeQueue)(nil)
	_ adapter.EmailSender          = (*fakeSender)(nil)
)

func resetJob() *entity.EmailJob {
	return entity.NewEmailJob(
		entity.TemplatePasswordReset,
		"ada@example.com",
		"Ada",
		"Reset your password",
		map[string]interface{}{
			"user_name":  "Ada",
			"reset_url":  "https://app.example.com/reset?token=abc",
			"expires_in": "1 hour",
		},
	)
}

func newTestWorker(t *testing.T, queue *fakeQueue, sender *fakeSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestWorkerProcessNow(t *testing.T) {
	t.Run("sends a pending job and records the provider ID", func(t *testing.T) {
		job := resetJob()
		queue := newFakeQueue(job)
		sender := &fakeSender{}
		worker := newTestWorker(t, queue, sender)

		worker.ProcessNow(context.Background())

		if len(sender.sent) != 1 {
			t.Fatalf("expected one send, got %d", len(sender.sent))
		}
		if sender.sent[0].To != "ada@example.com" || sender.sent[0].Subject != "Reset your password" {
			t.Errorf("unexpected send input %+v", sender.sent[0])
		}
		if sender.sent[0].HTML == "" {
			t.Error("expected rendered HTML body")
		}
		updated := queue.jobs[job.ID]
		if updated.Status != entity.EmailStatusSent {
			t.Errorf("expected status sent, got %s", updated.Status)
		}
		if updated.ProviderID != "provider-msg-1" {
			t.Errorf("expected provider ID to be recorded, got %q", updated.ProviderID)
		}
		if updated.ProcessedAt == nil {
			t.Error("expected ProcessedAt to be set")
		}
	})

	t.Run("renders the sync failure template", func(t *testing.T) {
		job := entity.NewEmailJob(
			entity.TemplateSyncFailure,
			"ada@example.com",
			"Ada",
			"We couldn't sync your inbox",
			map[string]interface{}{
				"user_name":     "Ada",
				"account_email": "inbox@gmail.com",
				"provider":      "GMAIL",
				"reason":        "token revoked",
			},
		)
		queue := newFakeQueue(job)
		sender := &fakeSender{}
		worker := newTestWorker(t, queue, sender)

		worker.ProcessNow(context.Background())

		if len(sender.sent) != 1 {
			t.Fatalf("expected one send, got %d", len(sender.sent))
		}
		if queue.jobs[job.ID].Status != entity.EmailStatusSent {
			t.Errorf("expected status sent, got %s", queue.jobs[job.ID].Status)
		}
	})

	t.Run("transient failure schedules a retry", func(t *testing.T) {
		job := resetJob()
		queue := newFakeQueue(job)
		sender := &fakeSender{sendErr: errors.New("connection reset")}
		worker := newTestWorker(t, queue, sender)

		worker.ProcessNow(context.Background())

		updated := queue.jobs[job.ID]
		if updated.Status != entity.EmailStatusPending {
			t.Errorf("expected status pending for retry, got %s", updated.Status)
		}
		if updated.Attempts != 1 {
			t.Errorf("expected one attempt, got %d", updated.Attempts)
		}
		if !updated.ScheduledAt.After(time.Now().UTC()) {
			t.Error("expected the retry to be scheduled in the future")
		}
	})

	t.Run("permanent failure does not retry", func(t *testing.T) {
		job := resetJob()
		queue := newFakeQueue(job)
		sender := &fakeSender{sendErr: domainerror.NewEmailError(
			domainerror.ErrCodePermanentEmailFailure,
			"recipient rejected",
			nil,
		)}
		worker := newTestWorker(t, queue, sender)

		worker.ProcessNow(context.Background())

		updated := queue.jobs[job.ID]
		if updated.Status != entity.EmailStatusFailed {
			t.Errorf("expected status failed, got %s", updated.Status)
		}
		if updated.LastError == "" {
			t.Error("expected the failure reason to be recorded")
		}
	})

	t.Run("exhausting attempts fails the job", func(t *testing.T) {
		job := resetJob()
		queue := newFakeQueue(job)
		sender := &fakeSender{sendErr: errors.New("connection reset")}
		worker := newTestWorker(t, queue, sender)

		for i := 0; i < job.MaxAttempts; i++ {
			queue.jobs[job.ID].ScheduledAt = time.Now().UTC().Add(-time.Second)
			queue.jobs[job.ID].Status = entity.EmailStatusPending
			worker.ProcessNow(context.Background())
		}

		if queue.jobs[job.ID].Status != entity.EmailStatusFailed {
			t.Errorf("expected status failed after %d attempts, got %s", job.MaxAttempts, queue.jobs[job.ID].Status)
		}
	})

	t.Run("unknown template type fails permanently", func(t *testing.T) {
		job := entity.NewEmailJob(
			entity.EmailTemplateType("newsletter"),
			"ada@example.com",
			"Ada",
			"Hello",
			nil,
		)
		queue := newFakeQueue(job)
		sender := &fakeSender{}
		worker := newTestWorker(t, queue, sender)

		worker.ProcessNow(context.Background())

		if len(sender.sent) != 0 {
			t.Error("expected no send for an unknown template")
		}
		if queue.jobs[job.ID].Status != entity.EmailStatusFailed {
			t.Errorf("expected status failed, got %s", queue.jobs[job.ID].Status)
		}
	})
}

func TestEmailJobBackoff(t *testing.T) {
	job := resetJob()

	job.MarkFailed(errors.New("timeout"), false)
	if !job.CanRetry() {
		t.Fatal("expected the job to be retryable after one transient failure")
	}
	first := job.ScheduledAt

	job.MarkFailed(errors.New("timeout"), false)
	if !job.ScheduledAt.After(first) {
		t.Error("expected backoff to grow between attempts")
	}

	job.MarkFailed(errors.New("timeout"), false)
	if job.CanRetry() {
		t.Error("expected retries to stop at MaxAttempts")
	}
}
