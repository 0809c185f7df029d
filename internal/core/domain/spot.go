package domain

import (
	"time"
)

// Source identifies where a spot record came from. Provenance is assigned
// at normalization time and never overwritten afterwards.
type Source string

const (
	SourceStatic Source = "kitsuenjo"  // bundled static dataset
	SourceAPI    Source = "public_api" // government open-data endpoints
	SourceUser   Source = "user"       // crowdsourced submissions
)

// SpotType classifies a location's smoking policy.
type SpotType string

const (
	TypeAllowed   SpotType = "allowed"
	TypeForbidden SpotType = "forbidden"
	TypeUser      SpotType = "user"
)

// Lang is a detected source language for localized text.
type Lang string

const (
	LangJA      Lang = "ja"
	LangKO      Lang = "ko"
	LangEN      Lang = "en"
	LangZH      Lang = "zh"
	LangUnknown Lang = "unknown"
)

// LocalizedText carries a source string plus best-effort translations.
// Original is always set when the bundle exists; Ko/En are populated only
// for recognized source scripts.
type LocalizedText struct {
	Original     string `json:"original"`
	Ko           string `json:"ko,omitempty"`
	En           string `json:"en,omitempty"`
	OriginalLang Lang   `json:"original_lang,omitempty"`
}

// SmokingSpot is the canonical entity every source is normalized into.
type SmokingSpot struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	NameLocalized    *LocalizedText `json:"name_localized,omitempty"`
	Lat              float64        `json:"lat"`
	Lng              float64        `json:"lng"`
	Type             SpotType       `json:"type"`
	Address          string         `json:"address,omitempty"`
	AddressLocalized *LocalizedText `json:"address_localized,omitempty"`
	Memo             string         `json:"memo,omitempty"`
	MemoLocalized    *LocalizedText `json:"memo_localized,omitempty"`
	BusinessHour     string         `json:"business_hour,omitempty"`
	Holiday          string         `json:"holiday,omitempty"`
	WebPage          string         `json:"web_page,omitempty"`
	HasRoof          bool           `json:"has_roof"`
	HasChair         bool           `json:"has_chair"`
	IsEnclosed       bool           `json:"is_enclosed"`
	Is24Hours        bool           `json:"is_24_hours"`
	Photos           []string       `json:"photos,omitempty"`
	Source           Source         `json:"source"`
	Country          string         `json:"country,omitempty"`
	Region           string         `json:"region,omitempty"`
	District         string         `json:"district,omitempty"`
	Distance         *float64       `json:"distance,omitempty"` // computed field
	CreatedAt        string         `json:"created_at,omitempty"`
	UpdatedAt        string         `json:"updated_at,omitempty"`
}

// Statistics summarizes the current aggregated collection.
type Statistics struct {
	ByCountry map[string]int `json:"by_country"`
	ByRegion  map[string]int `json:"by_region"`
	ByType    map[string]int `json:"by_type"`
	Total     int            `json:"total"`
}

// LoadPhase is the loader controller's lifecycle state.
type LoadPhase string

const (
	PhaseIdle          LoadPhase = "idle"
	PhaseCheckingCache LoadPhase = "checking_cache"
	PhaseFetching      LoadPhase = "fetching"
	PhaseProcessing    LoadPhase = "processing"
	PhaseReady         LoadPhase = "ready"
	PhaseError         LoadPhase = "error"
)

// LoadState reports loader progress to API consumers.
type LoadState struct {
	Phase     LoadPhase `json:"phase"`
	IsLoading bool      `json:"is_loading"`
	Progress  int       `json:"progress"` // 0-100
	Message   string    `json:"message,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// SubmissionStatus is the review state of a user submission.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is a user-contributed spot awaiting review.
type Submission struct {
	ID          string           `json:"id"`
	SpotID      string           `json:"spot_id"`
	Name        string           `json:"name"`
	Lat         float64          `json:"lat"`
	Lng         float64          `json:"lng"`
	Type        SpotType         `json:"type"`
	Memo        string           `json:"memo,omitempty"`
	Photos      []string         `json:"photos,omitempty"`
	Status      SubmissionStatus `json:"status"`
	SubmitterID string           `json:"submitter_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// SubmissionResult is returned to the client after a submission is accepted.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SpotID  string `json:"spot_id,omitempty"`
}
