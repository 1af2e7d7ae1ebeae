package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sajathahamed/Unilifmobile/internal/ai"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
)

const quotaMessage = "Your free AI quota is used up for today. You can still add items manually below."

// aiQuota short-circuits AI calls for students whose quota ran out.
type aiQuota struct {
	store  repository.QuotaStore
	logger *slog.Logger
}

func quotaError(cause error) error {
	return apperrors.TooManyRequests("AI_QUOTA_EXCEEDED", quotaMessage, cause)
}

// check fails fast inside a lockout window. A store error lets the call through.
func (q aiQuota) check(ctx context.Context, studentID int64) error {
	exhausted, err := q.store.Exhausted(ctx, studentID)
	if err != nil {
		q.logger.WarnContext(ctx, "ai quota lookup failed",
			slog.Int64("student_id", studentID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if exhausted {
		return quotaError(ai.ErrQuotaExceeded)
	}
	return nil
}

// observe starts a lockout window when err reports an exhausted quota and
// maps it to the quota error. Other errors are returned unchanged.
func (q aiQuota) observe(ctx context.Context, studentID int64, err error) error {
	if !errors.Is(err, ai.ErrQuotaExceeded) {
		return err
	}
	if markErr := q.store.MarkExhausted(ctx, studentID); markErr != nil {
		q.logger.WarnContext(ctx, "failed to record ai quota lockout",
			slog.Int64("student_id", studentID),
			slog.String("error", markErr.Error()),
		)
	}
	return quotaError(err)
}
