package moderation

import "errors"

var (
	ErrReportNotFound          = errors.New("report not found")
	ErrReportClosed            = errors.New("report is already closed")
	ErrInvalidReportTransition = errors.New("report status transition not allowed")
)
