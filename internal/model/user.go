package model

import "time"

// User represents a person whose records flow through the pipeline.
type User struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Email     string
	Consent   Consent
}

// Consent records whether a user has opted in to receiving recommendations.
type Consent struct {
	GrantedAt time.Time
	RevokedAt time.Time
	UserID    string
	Active    bool
}
