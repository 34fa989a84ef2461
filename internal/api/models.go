package api

import (
	"facebook-scorer/internal/scoring"
)

// Wire types match the upstream credit platform's contract, field names
// included (snake_case except callbackUrl, which the platform sends camel).

type SocialMediaRequest struct {
	SocialMedia string `json:"social_media"`
	Username    string `json:"username"`
}

type ScoreRequest struct {
	Type string               `json:"type"`
	Data []SocialMediaRequest `json:"data"`
}

type CentralScoreRequest struct {
	FaydaNumber string         `json:"fayda_number"`
	Requests    []ScoreRequest `json:"requests"`
	CallbackURL string         `json:"callbackUrl,omitempty"`
}

type SocialScoreResponse struct {
	FaydaNumber    string            `json:"fayda_number"`
	Score          int               `json:"score"`
	ScoreRange     string            `json:"score_range"`
	RiskLevel      string            `json:"risk_level"`
	ScoreBreakdown scoring.Breakdown `json:"score_breakdown"`
	Timestamp      string            `json:"timestamp"`
	Type           string            `json:"type"`
}

type CentralScoreResponse struct {
	FaydaNumber    string                         `json:"fayda_number"`
	CombinedScores map[string]SocialScoreResponse `json:"combined_scores"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// errorResponse keeps the {"detail": ...} body shape the upstream platform
// already parses.
type errorResponse struct {
	Detail string `json:"detail"`
}
