package app

import (
	"context"
	"time"

	"intersify/internal/common"
	"intersify/internal/domain/application"
)

// TrackingView is the read-side assembly of an application's current state,
// its full stage history (newest first) and a hint about what happens next.
type TrackingView struct {
	ApplicationID common.UUID               `json:"application_id"`
	StudentName   string                    `json:"student_name"`
	StudentEmail  string                    `json:"student_email"`
	PostingTitle  string                    `json:"posting_title"`
	CompanyName   string                    `json:"company_name"`
	CurrentStatus application.Status        `json:"current_status"`
	AppliedAt     time.Time                 `json:"applied_at"`
	ResumeURL     string                    `json:"resume_url"`
	StageHistory  []application.StageRecord `json:"stage_history"`
	TotalStages   int64                     `json:"total_stages"`
	NextAction    string                    `json:"next_action"`
	LastUpdated   time.Time                 `json:"last_updated"`
}

// nextActions hints what the student should expect per status. One entry per
// declared status; completeness is enforced by a test.
var nextActions = map[application.Status]string{
	application.StatusApplied:            "Waiting for company review",
	application.StatusShortlisted:        "Prepare for potential interview",
	application.StatusInterviewScheduled: "Attend scheduled interview",
	application.StatusInterviewCompleted: "Waiting for interview results",
	application.StatusOfferMade:          "Review and respond to offer",
	application.StatusAccepted:           "Congratulations! Prepare for onboarding",
	application.StatusRejected:           "Continue applying to other opportunities",
	application.StatusWithdrawn:          "Application withdrawn",
	application.StatusCompleted:          "Internship completed",
}

// NextAction returns the hint for a status.
func NextAction(status application.Status) string {
	if action, ok := nextActions[status]; ok {
		return action
	}
	return "Status unknown"
}

// GetTracking assembles the tracking view. Only the applying student or the
// posting owner may read it.
func (s *LifecycleService) GetTracking(ctx context.Context, applicationID, requesterID common.UUID) (*TrackingView, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	post, err := s.postings.GetByID(ctx, app.PostingID)
	if err != nil {
		return nil, err
	}
	if requesterID != app.StudentID && requesterID != post.CompanyID {
		return nil, common.NewError(common.CodeForbidden, "not allowed to view this application", nil)
	}

	stages, err := s.apps.ListStages(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	total, err := s.apps.CountStages(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	view := &TrackingView{
		ApplicationID: app.ID,
		PostingTitle:  post.Title,
		CurrentStatus: app.Status,
		AppliedAt:     app.AppliedAt,
		ResumeURL:     app.ResumeURL,
		StageHistory:  stages,
		TotalStages:   total,
		NextAction:    NextAction(app.Status),
		LastUpdated:   app.AppliedAt,
	}
	if len(stages) > 0 {
		view.LastUpdated = stages[0].StageDate
	}
	if student, err := s.users.GetByID(ctx, app.StudentID); err == nil {
		view.StudentName = student.Name
		view.StudentEmail = student.Email
	}
	if company, err := s.users.GetByID(ctx, post.CompanyID); err == nil {
		view.CompanyName = company.Name
	}
	return view, nil
}
