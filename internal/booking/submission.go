package booking

import (
	"strings"
	"time"
)

// SubmitRequest is the public booking form payload. Times come either as start_at/end_at
// or as the form's separate date, start_time and end_time fields.
type SubmitRequest struct {
	SpaceID   string `json:"space_id"`
	SpaceName string `json:"space_name"`
	Title     string `json:"title"`
	Requester string `json:"requester"`
	TeamName  string `json:"team_name"`
	Purpose   string `json:"purpose"`
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type normalizedSubmission struct {
	SpaceID   string
	SpaceName string
	Title     string
	Requester string
	TeamName  string
	Purpose   string
	Start     time.Time
	End       time.Time
}

func normalize(req SubmitRequest, loc *time.Location) (normalizedSubmission, error) {
	n := normalizedSubmission{
		SpaceID:   strings.TrimSpace(req.SpaceID),
		SpaceName: strings.TrimSpace(req.SpaceName),
		Title:     strings.TrimSpace(req.Title),
		Requester: strings.TrimSpace(req.Requester),
		TeamName:  strings.TrimSpace(req.TeamName),
		Purpose:   strings.TrimSpace(req.Purpose),
	}

	startRaw := strings.TrimSpace(req.StartAt)
	if startRaw == "" {
		startRaw = JoinDateTime(req.Date, req.StartTime)
	}
	endRaw := strings.TrimSpace(req.EndAt)
	if endRaw == "" {
		endRaw = JoinDateTime(req.Date, req.EndTime)
	}

	var missing []string
	if n.SpaceID == "" && n.SpaceName == "" {
		missing = append(missing, "space_id")
	}
	if n.Title == "" {
		missing = append(missing, "title")
	}
	if startRaw == "" {
		missing = append(missing, "start_at")
	}
	if endRaw == "" {
		missing = append(missing, "end_at")
	}
	if n.Requester == "" {
		missing = append(missing, "requester")
	}
	if len(missing) > 0 {
		return n, ValidationError{Code: CodeMissingField, Message: "missing required fields: " + strings.Join(missing, ", ")}
	}

	var err error
	if n.Start, err = ParseInstant(startRaw, loc); err != nil {
		return n, ValidationError{Code: CodeInvalidDatetime, Message: "invalid start_at: " + err.Error()}
	}
	if n.End, err = ParseInstant(endRaw, loc); err != nil {
		return n, ValidationError{Code: CodeInvalidDatetime, Message: "invalid end_at: " + err.Error()}
	}
	if !n.End.After(n.Start) {
		return n, ValidationError{Code: CodeInvalidRange, Message: "end_at must be after start_at"}
	}
	return n, nil
}
