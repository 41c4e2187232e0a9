package app

import (
	"context"
	"fmt"
	"time"

	"intersify/internal/common"
	"intersify/internal/domain/application"
	"intersify/internal/domain/certificate"
	"intersify/internal/domain/posting"
	"intersify/internal/domain/user"
	"intersify/internal/storage"
)

// CertificateService gates issuance on the application's terminal state:
// a certificate may be issued only for a COMPLETED application, and exactly
// once per (student, posting) pair.
type CertificateService struct {
	certs    certificate.Repository
	apps     application.Repository
	postings posting.Repository
	users    user.Repository
	files    storage.FileStore
}

func NewCertificateService(certs certificate.Repository, apps application.Repository, postings posting.Repository, users user.Repository, files storage.FileStore) *CertificateService {
	return &CertificateService{certs: certs, apps: apps, postings: postings, users: users, files: files}
}

func (s *CertificateService) Issue(ctx context.Context, applicationID, companyID common.UUID) (*certificate.Certificate, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	post, err := s.postings.GetByID(ctx, app.PostingID)
	if err != nil {
		return nil, err
	}
	if post.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "not allowed to issue a certificate for this application", nil)
	}
	if app.Status != application.StatusCompleted {
		return nil, common.NewError(common.CodeValidation, "cannot issue certificate: internship is not completed", nil)
	}
	exists, err := s.certs.ExistsByStudentAndPosting(ctx, app.StudentID, app.PostingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.NewError(common.CodeConflict, "certificate already issued for this internship", nil)
	}

	student, err := s.users.GetByID(ctx, app.StudentID)
	if err != nil {
		return nil, err
	}
	company, err := s.users.GetByID(ctx, post.CompanyID)
	if err != nil {
		return nil, err
	}

	content := renderCertificate(student.Name, post.Title, company.Name, time.Now().UTC())
	fileName := fmt.Sprintf("certificate_%s_%s.txt", app.StudentID, app.PostingID)
	fileURL, err := s.files.Store([]byte(content), fileName)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to store certificate file", err)
	}

	return s.certs.Create(ctx, certificate.Certificate{
		StudentID: app.StudentID,
		PostingID: app.PostingID,
		FileURL:   fileURL,
	})
}

func (s *CertificateService) ListByStudent(ctx context.Context, studentID common.UUID) ([]certificate.Certificate, error) {
	return s.certs.ListByStudent(ctx, studentID)
}

func renderCertificate(studentName, postingTitle, companyName string, issuedAt time.Time) string {
	return fmt.Sprintf(
		"Certificate of Completion\n\n"+
			"This certifies that %s has successfully completed the internship\n"+
			"'%s' at %s.\n\n"+
			"Issued on %s\n",
		studentName, postingTitle, companyName, issuedAt.Format("2006-01-02"))
}
