package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"intersify/internal/common"
	"intersify/internal/domain/application"
	"intersify/internal/domain/certificate"
	"intersify/internal/domain/posting"
	"intersify/internal/domain/user"
	"intersify/internal/notify"
)

type fakeApplicationRepo struct {
	mu     sync.Mutex
	apps   map[common.UUID]*application.Application
	stages map[common.UUID][]application.StageRecord
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:   make(map[common.UUID]*application.Application),
		stages: make(map[common.UUID][]application.StageRecord),
	}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application, firstStage application.StageRecord) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	r.apps[app.ID] = &app
	firstStage.ID = common.NewUUID()
	firstStage.ApplicationID = app.ID
	firstStage.Status = app.Status
	firstStage.StageDate = now
	r.stages[app.ID] = append(r.stages[app.ID], firstStage)
	copied := app
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) ExistsActive(ctx context.Context, postingID, studentID common.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.PostingID == postingID && app.StudentID == studentID && app.Status != application.StatusWithdrawn {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, from, to application.Status, stage application.StageRecord) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	if app.Status != from {
		return nil, common.NewError(common.CodeConflict,
			fmt.Sprintf("application %s was modified concurrently, expected status %s", id, from), nil)
	}
	now := time.Now().UTC()
	app.Status = to
	app.UpdatedAt = now
	stage.ID = common.NewUUID()
	stage.ApplicationID = id
	stage.Status = to
	stage.StageDate = now
	r.stages[id] = append(r.stages[id], stage)
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) ListStages(ctx context.Context, applicationID common.UUID) ([]application.StageRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.stages[applicationID]
	newestFirst := make([]application.StageRecord, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, stored[i])
	}
	return newestFirst, nil
}

func (r *fakeApplicationRepo) CountStages(ctx context.Context, applicationID common.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.stages[applicationID])), nil
}

type fakePostingRepo struct {
	mu       sync.Mutex
	postings map[common.UUID]*posting.Posting
}

func newFakePostingRepo() *fakePostingRepo {
	return &fakePostingRepo{postings: make(map[common.UUID]*posting.Posting)}
}

func (r *fakePostingRepo) add(p posting.Posting) posting.Posting {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = common.NewUUID()
	r.postings[p.ID] = &p
	return p
}

func (r *fakePostingRepo) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.postings[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "posting not found", nil)
	}
	copied := *p
	return &copied, nil
}

func (r *fakePostingRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]posting.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []posting.Posting
	for _, p := range r.postings {
		if p.CompanyID == companyID {
			items = append(items, *p)
		}
	}
	return items, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) add(u user.User) user.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = common.NewUUID()
	r.users[u.ID] = &u
	return u
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copied := *u
	return &copied, nil
}

type fakeCertificateRepo struct {
	mu    sync.Mutex
	certs []certificate.Certificate
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{}
}

func (r *fakeCertificateRepo) Create(ctx context.Context, cert certificate.Certificate) (*certificate.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cert.ID = common.NewUUID()
	cert.IssuedAt = time.Now().UTC()
	r.certs = append(r.certs, cert)
	copied := cert
	return &copied, nil
}

func (r *fakeCertificateRepo) ExistsByStudentAndPosting(ctx context.Context, studentID, postingID common.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cert := range r.certs {
		if cert.StudentID == studentID && cert.PostingID == postingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCertificateRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]certificate.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []certificate.Certificate
	for _, cert := range r.certs {
		if cert.StudentID == studentID {
			items = append(items, cert)
		}
	}
	return items, nil
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (s *fakeEmailSender) sentMails() []sentEmail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentEmail(nil), s.sent...)
}

type publishedMessage struct {
	channel string
	payload notify.Payload
}

type fakePublisher struct {
	mu        sync.Mutex
	published []publishedMessage
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, channel string, payload notify.Payload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, publishedMessage{channel: channel, payload: payload})
	return nil
}

func (p *fakePublisher) messages() []publishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedMessage(nil), p.published...)
}

type fakeFileStore struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string][]byte)}
}

func (s *fakeFileStore) Store(data []byte, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.files[name] = data
	return "file://fake/" + name, nil
}
