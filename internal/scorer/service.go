// Orchestrate one username's trip through the pipeline:
// cache -> fetch -> parse -> score -> cache

package scorer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"facebook-scorer/internal/alert"
	"facebook-scorer/internal/cache"
	"facebook-scorer/internal/facebook"
	"facebook-scorer/internal/scoring"
)

// ProfileFetcher fetches raw profile HTML. Satisfied by *facebook.Client.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (string, error)
}

// Service computes scores for individual usernames.
type Service struct {
	fetcher ProfileFetcher
	cache   *cache.ScoreCache
	alerts  *alert.Notifier
	weights scoring.Weights
	logger  *zap.Logger
}

func New(fetcher ProfileFetcher, scoreCache *cache.ScoreCache, alerts *alert.Notifier, weights scoring.Weights, logger *zap.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   scoreCache,
		alerts:  alerts,
		weights: weights,
		logger:  logger,
	}
}

// Score returns the profile score for a username, serving from cache when
// the profile was scored recently.
func (s *Service) Score(ctx context.Context, username string) (scoring.ProfileScore, error) {
	if cached, ok := s.cache.Get(username); ok {
		s.logger.Info("♻️ serving cached score", zap.String("username", username), zap.Int("score", cached.Score))
		return cached, nil
	}

	html, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		if errors.Is(err, facebook.ErrAuthFailed) {
			if alertErr := s.alerts.LoginFailure(err); alertErr != nil {
				s.logger.Warn("⚠️ failed to send login alert", zap.Error(alertErr))
			}
		}
		return scoring.ProfileScore{}, err
	}

	profile := facebook.ParseProfile(html, username)
	result := scoring.Calculate(profile, s.weights)

	score := scoring.ProfileScore{
		Username:  username,
		Score:     scoring.ScaleToRange(result.Total),
		Tier:      result.Tier,
		Breakdown: result.Breakdown(),
	}

	s.logger.Info("✅ profile scored",
		zap.String("username", username),
		zap.Int("score", score.Score),
		zap.String("tier", score.Tier),
		zap.Bool("verified", profile.IsVerified),
		zap.Int("followers", profile.Followers),
	)

	s.cache.Put(username, score)
	return score, nil
}
