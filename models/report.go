package models

import "time"

// ReportType is the complaint category.
type ReportType string

const (
	ReportScam                      ReportType = "scam"
	ReportFakeListing               ReportType = "fake_listing"
	ReportInappropriateContent      ReportType = "inappropriate_content"
	ReportSpam                      ReportType = "spam"
	ReportSafetyConcern             ReportType = "safety_concern"
	ReportFraudulentActivity        ReportType = "fraudulent_activity"
	ReportHarassment                ReportType = "harassment"
	ReportPriceGouging              ReportType = "price_gouging"
	ReportFacilityMisrepresentation ReportType = "facility_misrepresentation"
	ReportOther                     ReportType = "other"
)

// ReportTypes lists every accepted report type.
var ReportTypes = []ReportType{
	ReportScam, ReportFakeListing, ReportInappropriateContent, ReportSpam,
	ReportSafetyConcern, ReportFraudulentActivity, ReportHarassment,
	ReportPriceGouging, ReportFacilityMisrepresentation, ReportOther,
}

func (t ReportType) Valid() bool {
	for _, known := range ReportTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ReportStatus is the moderation workflow state.
type ReportStatus string

const (
	ReportPending     ReportStatus = "pending"
	ReportUnderReview ReportStatus = "under_review"
	ReportResolved    ReportStatus = "resolved"
	ReportDismissed   ReportStatus = "dismissed"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportUnderReview, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

// IsClosed reports whether the report has left the moderation queue.
func (s ReportStatus) IsClosed() bool {
	return s == ReportResolved || s == ReportDismissed
}

// Priority is the moderation triage tier.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ActionTaken is the remediation outcome recorded at resolution.
type ActionTaken string

const (
	ActionNone             ActionTaken = "none"
	ActionWarningIssued    ActionTaken = "warning_issued"
	ActionContentRemoved   ActionTaken = "content_removed"
	ActionListingSuspended ActionTaken = "listing_suspended"
	ActionListingRemoved   ActionTaken = "listing_removed"
	ActionUserSuspended    ActionTaken = "user_suspended"
	ActionUserBanned       ActionTaken = "user_banned"
	ActionRefundIssued     ActionTaken = "refund_issued"
	ActionOther            ActionTaken = "other"
)

// TargetKind tells which aggregate a report is filed against.
type TargetKind string

const (
	TargetSpace TargetKind = "space"
	TargetUser  TargetKind = "user"
)

// ReportTarget is the single subject of a report.
type ReportTarget struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// Report is a moderation complaint filed against a space or a user.
// Exactly one of ReportedSpaceID and ReportedUserID is set.
type Report struct {
	ID              string `bson:"id" json:"id"`
	ReportedSpaceID string `bson:"reportedSpaceId,omitempty" json:"reportedSpaceId,omitempty"`
	ReportedUserID  string `bson:"reportedUserId,omitempty" json:"reportedUserId,omitempty"`
	ReporterID      string `bson:"reporterId" json:"reporterId"`

	Type        ReportType `bson:"type" json:"type"`
	Reason      string     `bson:"reason" json:"reason"`
	Description string     `bson:"description" json:"description"`
	Evidence    []string   `bson:"evidence" json:"evidence"` // image/screenshot URLs, in filing order

	Status   ReportStatus `bson:"status" json:"status"`
	Priority Priority     `bson:"priority" json:"priority"`
	// PriorityExplicit is set once any caller supplies a priority; escalation never overrides it.
	PriorityExplicit bool `bson:"priorityExplicit" json:"-"`

	AdminNotes  string      `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	ActionTaken ActionTaken `bson:"actionTaken,omitempty" json:"actionTaken,omitempty"`
	ResolvedBy  string      `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	ResolvedAt  *time.Time  `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Target returns the report's subject.
func (r Report) Target() ReportTarget {
	if r.ReportedSpaceID != "" {
		return ReportTarget{Kind: TargetSpace, ID: r.ReportedSpaceID}
	}
	return ReportTarget{Kind: TargetUser, ID: r.ReportedUserID}
}

// SetTarget stores t, clearing the other reference.
func (r *Report) SetTarget(t ReportTarget) {
	r.ReportedSpaceID, r.ReportedUserID = "", ""
	switch t.Kind {
	case TargetSpace:
		r.ReportedSpaceID = t.ID
	case TargetUser:
		r.ReportedUserID = t.ID
	}
}

// ReportView is a report as served, with values derived at read time.
type ReportView struct {
	Report
	DaysOpen int  `json:"daysOpen"`
	IsUrgent bool `json:"isUrgent"`
}
