package moderation

import (
	"strings"
	"time"

	"workspot/models"
	"workspot/utils"

	"github.com/google/uuid"
)

const targetMessage = "must target exactly one of space or user"

// ReportInput is a report as filed by a user.
type ReportInput struct {
	ReportedSpaceID string   `json:"reportedSpaceId"`
	ReportedUserID  string   `json:"reportedUserId"`
	ReporterID      string   `json:"reporterId" validate:"required"`
	Type            string   `json:"type" validate:"required,oneof=scam fake_listing inappropriate_content spam safety_concern fraudulent_activity harassment price_gouging facility_misrepresentation other"`
	Reason          string   `json:"reason" validate:"required,max=500"`
	Description     string   `json:"description" validate:"required,max=1000"`
	Evidence        []string `json:"evidence" validate:"omitempty,dive,url"`
	// Priority is nil unless the caller chose one.
	Priority *string `json:"priority" validate:"omitnil,oneof=low medium high critical"`
}

// ReportUpdate carries the editable fields of an open report. Nil fields are
// left unchanged; a non-nil empty Evidence clears the list.
type ReportUpdate struct {
	Type        *string  `json:"type" validate:"omitnil,oneof=scam fake_listing inappropriate_content spam safety_concern fraudulent_activity harassment price_gouging facility_misrepresentation other"`
	Reason      *string  `json:"reason" validate:"omitnil,min=1,max=500"`
	Description *string  `json:"description" validate:"omitnil,min=1,max=1000"`
	Evidence    []string `json:"evidence" validate:"omitempty,dive,url"`
	Priority    *string  `json:"priority" validate:"omitnil,oneof=low medium high critical"`
}

// ResolveInput closes a report.
type ResolveInput struct {
	Status      string `json:"status" validate:"required,oneof=resolved dismissed"`
	ActionTaken string `json:"actionTaken" validate:"omitempty,oneof=none warning_issued content_removed listing_suspended listing_removed user_suspended user_banned refund_issued other"`
	AdminNotes  string `json:"adminNotes" validate:"max=1000"`
}

// ListQuery filters the moderation queue.
type ListQuery struct {
	Status     string `form:"status" validate:"omitempty,oneof=pending under_review resolved dismissed"`
	Priority   string `form:"priority" validate:"omitempty,oneof=low medium high critical"`
	Type       string `form:"type" validate:"omitempty,oneof=scam fake_listing inappropriate_content spam safety_concern fraudulent_activity harassment price_gouging facility_misrepresentation other"`
	TargetKind string `form:"targetKind" validate:"omitempty,oneof=space user"`
	TargetID   string `form:"targetId"`
	ReporterID string `form:"reporterId"`
	Urgent     bool   `form:"urgent"`
	Limit      int64  `form:"limit" validate:"gte=0,lte=500"`
}

// ResolveTarget turns the two optional references into the report's single
// target. Both or neither set is a validation error.
func ResolveTarget(spaceID, userID string) (models.ReportTarget, error) {
	spaceID, userID = strings.TrimSpace(spaceID), strings.TrimSpace(userID)

	switch {
	case spaceID != "" && userID == "":
		return models.ReportTarget{Kind: models.TargetSpace, ID: spaceID}, nil
	case userID != "" && spaceID == "":
		return models.ReportTarget{Kind: models.TargetUser, ID: userID}, nil
	}
	verr := &utils.ValidationError{}
	verr.Add("target", targetMessage)
	return models.ReportTarget{}, verr
}

// NewReport validates in and builds a pending report with its priority derived.
func NewReport(in ReportInput, now time.Time) (*models.Report, error) {
	in.ReporterID = strings.TrimSpace(in.ReporterID)
	in.Reason = strings.TrimSpace(in.Reason)
	in.Description = strings.TrimSpace(in.Description)

	verr := utils.ValidateStruct(in)
	target, err := ResolveTarget(in.ReportedSpaceID, in.ReportedUserID)
	if err != nil {
		verr.Add("target", targetMessage)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	evidence := in.Evidence
	if evidence == nil {
		evidence = []string{}
	}

	r := &models.Report{
		ID:          uuid.New().String(),
		ReporterID:  in.ReporterID,
		Reason:      in.Reason,
		Description: in.Description,
		Evidence:    evidence,
		Status:      models.ReportPending,
		Priority:    models.PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.SetTarget(target)
	ApplyTypeChange(r, models.ReportType(in.Type), priorityPtr(in.Priority))
	return r, nil
}

func priorityPtr(s *string) *models.Priority {
	if s == nil {
		return nil
	}
	p := models.Priority(*s)
	return &p
}
