// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// QueuePasswordResetEmail queues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	subject := "Reset your password - SnapBill"

	templateData := map[string]interface{}{
		"user_name":  input.UserName,
		"reset_url":  input.ResetURL,
		"expires_in": input.ExpiresIn,
	}

	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailEnqueue,
			"failed to queue password reset email",
			err,
		)
	}

	return nil
}

// QueueSyncFailureEmail queues a notification that an email account sync failed.
func (s *Service) QueueSyncFailureEmail(ctx context.Context, input adapter.QueueSyncFailureInput) error {
	subject := fmt.Sprintf("We could not sync %s - SnapBill", input.AccountEmail)

	templateData := map[string]interface{}{
		"user_name":     input.UserName,
		"account_email": input.AccountEmail,
		"provider":      input.Provider,
		"reason":        input.Reason,
	}

	job := entity.NewEmailJob(
		entity.TemplateSyncFailure,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailEnqueue,
			"failed to queue sync failure email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
