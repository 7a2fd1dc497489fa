package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/conduitlabs/conduit/internal/conduit/cache"
	"github.com/conduitlabs/conduit/internal/conduit/moderator"
	"github.com/conduitlabs/conduit/pkg/cryptox"
)

var (
	// ErrContentFlagged reports content rejected by the moderation model.
	ErrContentFlagged = errors.New("service: content flagged by moderation")

	// ErrContentUnprocessable reports content the moderation API could not
	// evaluate, e.g. a dead image link.
	ErrContentUnprocessable = errors.New("service: content could not be moderated")
)

// verdictTTL is how long moderation verdicts stay cached. Content is
// addressed by hash, so a verdict never goes stale for the same bytes.
const verdictTTL = 30 * 24 * time.Hour

// VerdictCache memoizes moderation verdicts. *cache.Cache satisfies it.
type VerdictCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

var _ VerdictCache = (*cache.Cache)(nil)

// ModerationService gates article and comment bodies behind the content
// moderation API, memoizing verdicts in Redis.
type ModerationService struct {
	Moderator *moderator.Client
	Cache     VerdictCache // nil disables memoization
	Skip      bool
	Logger    *slog.Logger
}

// Check returns nil when content is acceptable, ErrContentFlagged or
// ErrContentUnprocessable when it is not, and a plain error when the
// moderation backend is unreachable.
func (s *ModerationService) Check(ctx context.Context, content string) error {
	if s.Skip {
		return nil
	}

	key := "moderation:" + cryptox.Fingerprint(content)

	var verdict moderator.Verdict
	cached := false
	if s.Cache != nil {
		hit, err := s.Cache.Get(ctx, key, &verdict)
		if err != nil {
			// Cache trouble degrades to a direct call.
			s.Logger.Warn("moderation cache read failed", "err", err)
		}
		cached = hit && err == nil
	}

	if !cached {
		var err error
		verdict, err = s.Moderator.ModerateContent(ctx, content)
		if err != nil {
			return err
		}

		if s.Cache != nil {
			if err := s.Cache.Set(ctx, key, verdict, verdictTTL); err != nil {
				s.Logger.Warn("moderation cache write failed", "err", err)
			}
		}
	}

	switch {
	case verdict.Unprocessable:
		return ErrContentUnprocessable
	case verdict.Flagged:
		return ErrContentFlagged
	}
	return nil
}
