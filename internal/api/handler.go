package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"facebook-scorer/internal/alert"
	"facebook-scorer/internal/callback"
	"facebook-scorer/internal/database"
	"facebook-scorer/internal/facebook"
	"facebook-scorer/internal/models"
	"facebook-scorer/internal/scoring"
)

const (
	scoreTypeSocial     = "SOCIAL_SCORE"
	socialMediaFacebook = "facebook"

	// callbackDeadline bounds background webhook delivery after the HTTP
	// response has already been sent.
	callbackDeadline = 2 * time.Minute
)

// ScoreService computes the score for a single username.
// Satisfied by *scorer.Service.
type ScoreService interface {
	Score(ctx context.Context, username string) (scoring.ProfileScore, error)
}

// Handler wires the scoring pipeline into HTTP handlers.
type Handler struct {
	scores    ScoreService
	repo      *database.Repository // nil when score history is disabled
	callbacks *callback.Notifier
	alerts    *alert.Notifier // nil when alerting is disabled
	logger    *zap.Logger

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

func NewHandler(scores ScoreService, repo *database.Repository, callbacks *callback.Notifier, alerts *alert.Notifier, logger *zap.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		scores:    scores,
		repo:      repo,
		callbacks: callbacks,
		alerts:    alerts,
		logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: h.clock().Format(time.RFC3339),
	})
}

func (h *Handler) handleFacebookScore(c *gin.Context) {
	var req CentralScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "unable to parse JSON payload"})
		return
	}

	usernames := collectFacebookUsernames(req)
	if len(usernames) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "No Facebook score requests found"})
		return
	}

	var scored []scoring.ProfileScore
	failed := 0
	for _, username := range usernames {
		score, err := h.scores.Score(c.Request.Context(), username)
		if err != nil {
			if errors.Is(err, facebook.ErrAuthFailed) {
				c.JSON(http.StatusServiceUnavailable, errorResponse{Detail: "Authentication failed"})
				return
			}
			h.logger.Warn("⚠️ profile scoring failed", zap.String("username", username), zap.Error(err))
			failed++
			continue
		}
		scored = append(scored, score)
	}

	if failed > 0 {
		if err := h.alerts.RunSummary(len(scored), failed); err != nil {
			h.logger.Warn("⚠️ failed to send run summary alert", zap.Error(err))
		}
	}

	if len(scored) == 0 {
		c.JSON(http.StatusNotFound, errorResponse{Detail: "No valid Facebook profiles processed"})
		return
	}

	resp := h.buildResponse(req.FaydaNumber, scored)
	h.persistScores(c.Request.Context(), req.FaydaNumber, scored)

	if req.CallbackURL != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), callbackDeadline)
			defer cancel()
			if err := h.callbacks.Deliver(ctx, req.CallbackURL, resp); err != nil {
				h.logger.Warn("⚠️ callback delivery failed", zap.String("url", req.CallbackURL), zap.Error(err))
			}
		}()
	}

	c.JSON(http.StatusOK, resp)
}

// buildResponse averages the individual profile scores into the combined
// response the platform expects.
func (h *Handler) buildResponse(faydaNumber string, scored []scoring.ProfileScore) CentralScoreResponse {
	sum := 0
	for _, s := range scored {
		sum += s.Score
	}
	avg := float64(sum) / float64(len(scored))

	return CentralScoreResponse{
		FaydaNumber: faydaNumber,
		CombinedScores: map[string]SocialScoreResponse{
			scoreTypeSocial: {
				FaydaNumber: faydaNumber,
				//banker's rounding for the published score, risk level from
				//the unrounded average so a .5 boundary cannot promote it
				Score:          int(math.RoundToEven(avg)),
				ScoreRange:     scoring.ScoreRange,
				RiskLevel:      scoring.RiskLevel(avg),
				ScoreBreakdown: combineBreakdowns(scored),
				Timestamp:      h.clock().Format(time.RFC3339),
				Type:           scoreTypeSocial,
			},
		},
	}
}

func (h *Handler) handleRecentScores(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusNotFound, errorResponse{Detail: "score history is not enabled"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			c.JSON(http.StatusBadRequest, errorResponse{Detail: "limit must be between 1 and 500"})
			return
		}
		limit = parsed
	}

	records, err := h.repo.RecentScores(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load score history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: "failed to load score history"})
		return
	}
	if records == nil {
		records = []models.ScoreRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"scores": records})
}

func (h *Handler) persistScores(ctx context.Context, faydaNumber string, scored []scoring.ProfileScore) {
	if h.repo == nil {
		return
	}
	for _, s := range scored {
		record := models.ScoreRecord{
			FaydaNumber: faydaNumber,
			Username:    s.Username,
			Score:       s.Score,
			RiskLevel:   scoring.RiskLevel(float64(s.Score)),
			Tier:        s.Tier,
		}
		if _, err := h.repo.SaveScore(ctx, &record); err != nil {
			h.logger.Warn("⚠️ failed to persist score record", zap.String("username", s.Username), zap.Error(err))
		}
	}
}

func collectFacebookUsernames(req CentralScoreRequest) []string {
	var usernames []string
	for _, scoreReq := range req.Requests {
		if scoreReq.Type != scoreTypeSocial {
			continue
		}
		for _, socialReq := range scoreReq.Data {
			if socialReq.SocialMedia == socialMediaFacebook && socialReq.Username != "" {
				usernames = append(usernames, socialReq.Username)
			}
		}
	}
	return usernames
}

func combineBreakdowns(scored []scoring.ProfileScore) scoring.Breakdown {
	combined := scoring.Breakdown{}
	for _, key := range []string{"profile_score", "network_score", "activity_score"} {
		var sum, max float64
		for _, s := range scored {
			item := s.Breakdown[key]
			sum += item.Value
			max = item.Max
		}
		combined[key] = scoring.BreakdownItem{
			Value: sum / float64(len(scored)),
			Max:   max,
		}
	}
	return combined
}
