package models

import (
	"time"
)

// ScoreRecord is one persisted scoring outcome. Records are keyed by
// (fayda_number, username): re-scoring the same profile for the same
// identity updates the row instead of growing the table.
type ScoreRecord struct {
	ID          string    `json:"id"`
	FaydaNumber string    `json:"fayda_number"`
	Username    string    `json:"username"`
	Score       int       `json:"score"`
	RiskLevel   string    `json:"risk_level"`
	Tier        string    `json:"tier"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
