package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// LegacyReport is the old flat report document still found in the reports
// collection. It is only read by the migration and never served.
type LegacyReport struct {
	Space      string    `bson:"space"`
	ReportedBy string    `bson:"reportedBy"`
	Reason     string    `bson:"reason"`
	Status     string    `bson:"status,omitempty"`
	CreatedAt  time.Time `bson:"createdAt"`
}

const (
	maxReasonLen      = 500
	maxDescriptionLen = 1000

	// legacyReasonFallback fills reason and description when the old document had none.
	legacyReasonFallback = "migrated legacy report"
)

// Canonical converts a legacy document into the current report shape.
func (l LegacyReport) Canonical(id string, now time.Time) Report {
	status := ReportStatus(l.Status)
	if !status.Valid() {
		status = ReportPending
	}
	reason := strings.TrimSpace(l.Reason)
	if reason == "" {
		reason = legacyReasonFallback
	}
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	r := Report{
		ID:          id,
		ReporterID:  l.ReportedBy,
		Type:        ReportOther,
		Reason:      truncateRunes(reason, maxReasonLen),
		Description: truncateRunes(reason, maxDescriptionLen),
		Evidence:    []string{},
		Status:      status,
		Priority:    PriorityMedium,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}
	r.SetTarget(ReportTarget{Kind: TargetSpace, ID: l.Space})
	if status.IsClosed() {
		// Legacy documents never recorded when they were closed.
		resolvedAt := now
		r.ResolvedAt = &resolvedAt
	}
	return r
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
