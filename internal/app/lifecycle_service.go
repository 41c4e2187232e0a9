package app

import (
	"context"

	"github.com/rs/zerolog"

	"intersify/internal/common"
	"intersify/internal/domain/application"
	"intersify/internal/domain/posting"
	"intersify/internal/domain/user"
	"intersify/internal/notify"
)

// LifecycleService owns every write to an application's status and stage
// history. Reads resolve related entities by id; nothing here assumes a
// loaded object graph.
type LifecycleService struct {
	apps       application.Repository
	postings   posting.Repository
	users      user.Repository
	dispatcher *notify.Dispatcher
	logger     zerolog.Logger
}

func NewLifecycleService(apps application.Repository, postings posting.Repository, users user.Repository, dispatcher *notify.Dispatcher, logger zerolog.Logger) *LifecycleService {
	return &LifecycleService{apps: apps, postings: postings, users: users, dispatcher: dispatcher, logger: logger}
}

const submissionNotes = "Application submitted"

// Submit creates an application in APPLIED together with its first stage
// record, then announces it to the posting owner. At most one non-withdrawn
// application may exist per (student, posting) pair.
func (s *LifecycleService) Submit(ctx context.Context, studentID, postingID common.UUID, resumeURL string) (*application.Application, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeNotFound, "student not found", err)
		}
		return nil, err
	}
	post, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	exists, err := s.apps.ExistsActive(ctx, postingID, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.NewError(common.CodeConflict, "already applied to this internship", nil)
	}

	actor := studentID
	created, err := s.apps.Create(ctx, application.Application{
		PostingID: postingID,
		StudentID: studentID,
		Status:    application.StatusApplied,
		ResumeURL: resumeURL,
	}, application.StageRecord{
		Notes:     submissionNotes,
		UpdatedBy: &actor,
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.DispatchSubmitted(notify.Event{
		ApplicationID: created.ID,
		Status:        created.Status,
		StudentID:     studentID,
		StudentName:   student.Name,
		StudentEmail:  student.Email,
		CompanyID:     post.CompanyID,
		PostingTitle:  post.Title,
	})
	return created, nil
}

// Transition moves an application to a requested status on behalf of the
// posting owner. The status write and the stage append commit atomically;
// notifications run after the commit and cannot fail the call.
func (s *LifecycleService) Transition(ctx context.Context, applicationID common.UUID, rawStatus, notes string, actorID common.UUID) (*application.Application, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	post, err := s.postings.GetByID(ctx, app.PostingID)
	if err != nil {
		return nil, err
	}
	if post.CompanyID != actorID {
		return nil, common.NewError(common.CodeForbidden, "not allowed to update this application", nil)
	}

	requested, err := application.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	if err := application.ValidateTransition(app.Status, requested); err != nil {
		return nil, err
	}

	actor := actorID
	updated, err := s.apps.UpdateStatus(ctx, applicationID, app.Status, requested, application.StageRecord{
		Notes:     notes,
		UpdatedBy: &actor,
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.DispatchStatusUpdate(s.transitionEvent(ctx, updated, post, notes))
	return updated, nil
}

// transitionEvent resolves the names and addresses notifications need. The
// lifecycle change is already committed at this point, so lookup failures
// only degrade the notification and are logged rather than returned.
func (s *LifecycleService) transitionEvent(ctx context.Context, app *application.Application, post *posting.Posting, notes string) notify.Event {
	event := notify.Event{
		ApplicationID: app.ID,
		Status:        app.Status,
		Notes:         notes,
		StudentID:     app.StudentID,
		CompanyID:     post.CompanyID,
		PostingTitle:  post.Title,
	}
	if student, err := s.users.GetByID(ctx, app.StudentID); err == nil {
		event.StudentName = student.Name
		event.StudentEmail = student.Email
	} else {
		s.logger.Warn().Err(err).Str("student_id", app.StudentID.String()).Msg("failed to resolve student for notification")
	}
	if company, err := s.users.GetByID(ctx, post.CompanyID); err == nil {
		event.CompanyName = company.Name
	} else {
		s.logger.Warn().Err(err).Str("company_id", post.CompanyID.String()).Msg("failed to resolve company for notification")
	}
	return event
}

// GetHistory returns the stage records newest first. Authorization is the
// caller's responsibility; this read is exposed only to contexts that have
// already been authorized.
func (s *LifecycleService) GetHistory(ctx context.Context, applicationID common.UUID) ([]application.StageRecord, error) {
	if _, err := s.apps.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.apps.ListStages(ctx, applicationID)
}
