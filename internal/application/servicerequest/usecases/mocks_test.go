package usecases

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"servicedesk/internal/application/servicerequest/services"
	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/domain/user"
	uservo "servicedesk/internal/domain/user/valueobjects"
	"servicedesk/internal/infrastructure/storage"
	"servicedesk/internal/shared/authorization"
	"servicedesk/internal/shared/biztime"
	"servicedesk/internal/shared/logger"
	"servicedesk/internal/shared/services/markdown"
)

// memServiceRequestRepository is an in-memory servicerequest.Repository.
// The *Err fields force the matching method to fail.
type memServiceRequestRepository struct {
	mu        sync.Mutex
	rows      map[uint]*servicerequest.ServiceRequest
	nextID    uint
	CreateErr error
	GetErr    error
	UpdateErr error
	DeleteErr error
	ListErr   error
	updates   int
}

func newMemServiceRequestRepository() *memServiceRequestRepository {
	return &memServiceRequestRepository{rows: map[uint]*servicerequest.ServiceRequest{}}
}

func (r *memServiceRequestRepository) Create(_ context.Context, sr *servicerequest.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.nextID++
	if err := sr.SetID(r.nextID); err != nil {
		return err
	}
	r.rows[sr.ID()] = sr
	return nil
}

func (r *memServiceRequestRepository) GetBySID(_ context.Context, sid string) (*servicerequest.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	for _, sr := range r.rows {
		if sr.SID() == sid {
			return sr, nil
		}
	}
	return nil, nil
}

func (r *memServiceRequestRepository) GetByID(_ context.Context, id uint) (*servicerequest.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	return r.rows[id], nil
}

func (r *memServiceRequestRepository) UpdateStatus(_ context.Context, sr *servicerequest.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.updates++
	r.rows[sr.ID()] = sr
	return nil
}

func (r *memServiceRequestRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	delete(r.rows, id)
	return nil
}

func (r *memServiceRequestRepository) List(_ context.Context, f servicerequest.ListFilter) ([]*servicerequest.ServiceRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}

	var matched []*servicerequest.ServiceRequest
	for _, sr := range r.rows {
		if f.CustomerID != nil && sr.CustomerID() != *f.CustomerID {
			continue
		}
		if f.SupportStaffID != nil && !sr.IsAssignedTo(*f.SupportStaffID) {
			continue
		}
		matched = append(matched, sr)
	}
	slices.SortFunc(matched, func(a, b *servicerequest.ServiceRequest) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return int(b.ID()) - int(a.ID())
	})

	total := int64(len(matched))
	start := min(f.Offset(), len(matched))
	end := min(start+f.PageSize, len(matched))
	return matched[start:end], total, nil
}

func (r *memServiceRequestRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type memAttachmentRepository struct {
	mu        sync.Mutex
	rows      map[uint]*servicerequest.Attachment
	nextID    uint
	CreateErr error
	// FailCreateAfter makes Create fail once this many records exist.
	FailCreateAfter int
	DeleteErr       error
}

func newMemAttachmentRepository() *memAttachmentRepository {
	return &memAttachmentRepository{rows: map[uint]*servicerequest.Attachment{}, FailCreateAfter: -1}
}

func (r *memAttachmentRepository) Create(_ context.Context, a *servicerequest.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if r.FailCreateAfter >= 0 && len(r.rows) >= r.FailCreateAfter {
		return errors.New("attachment table full")
	}
	r.nextID++
	if err := a.SetID(r.nextID); err != nil {
		return err
	}
	r.rows[a.ID()] = a
	return nil
}

func (r *memAttachmentRepository) GetBySID(_ context.Context, sid string) (*servicerequest.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.SID() == sid {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAttachmentRepository) GetByID(_ context.Context, id uint) (*servicerequest.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id], nil
}

func (r *memAttachmentRepository) ListByServiceRequestID(_ context.Context, srID uint) ([]*servicerequest.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(srID), nil
}

func (r *memAttachmentRepository) ListByServiceRequestIDs(_ context.Context, ids []uint) (map[uint][]*servicerequest.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uint][]*servicerequest.Attachment, len(ids))
	for _, id := range ids {
		out[id] = r.listLocked(id)
	}
	return out, nil
}

func (r *memAttachmentRepository) listLocked(srID uint) []*servicerequest.Attachment {
	var out []*servicerequest.Attachment
	for _, a := range r.rows {
		if a.ServiceRequestID() == srID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b *servicerequest.Attachment) int { return int(a.ID()) - int(b.ID()) })
	return out
}

func (r *memAttachmentRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memAttachmentRepository) DeleteByServiceRequestID(_ context.Context, srID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	for id, a := range r.rows {
		if a.ServiceRequestID() == srID {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *memAttachmentRepository) countFor(srID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listLocked(srID))
}

// snapshotTx emulates rollback for the two in-memory repositories: state
// captured before fn is restored when fn fails.
type snapshotTx struct {
	requests    *memServiceRequestRepository
	attachments *memAttachmentRepository
}

func (tx *snapshotTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.requests.mu.Lock()
	savedRequests := make(map[uint]*servicerequest.ServiceRequest, len(tx.requests.rows))
	for k, v := range tx.requests.rows {
		savedRequests[k] = v
	}
	tx.requests.mu.Unlock()

	tx.attachments.mu.Lock()
	savedAttachments := make(map[uint]*servicerequest.Attachment, len(tx.attachments.rows))
	for k, v := range tx.attachments.rows {
		savedAttachments[k] = v
	}
	tx.attachments.mu.Unlock()

	if err := fn(ctx); err != nil {
		tx.requests.mu.Lock()
		tx.requests.rows = savedRequests
		tx.requests.mu.Unlock()
		tx.attachments.mu.Lock()
		tx.attachments.rows = savedAttachments
		tx.attachments.mu.Unlock()
		return err
	}
	return nil
}

type mockStaffDirectory struct {
	ListSupportStaffFunc func(ctx context.Context) ([]user.StaffMember, error)
	calls                int
}

func (m *mockStaffDirectory) ListSupportStaff(ctx context.Context) ([]user.StaffMember, error) {
	m.calls++
	if m.ListSupportStaffFunc != nil {
		return m.ListSupportStaffFunc(ctx)
	}
	return nil, nil
}

func staffPool(ids ...uint) *mockStaffDirectory {
	return &mockStaffDirectory{
		ListSupportStaffFunc: func(context.Context) ([]user.StaffMember, error) {
			members := make([]user.StaffMember, len(ids))
			for i, id := range ids {
				members[i] = user.StaffMember{ID: id, Email: fmt.Sprintf("staff%d@example.com", id), Name: fmt.Sprintf("Staff %d", id)}
			}
			return members, nil
		},
	}
}

type mockUserReader struct {
	users map[uint]*user.User
	err   error
}

func (m *mockUserReader) GetByIDs(_ context.Context, ids []uint) ([]*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func newUserReader(entries map[uint]authorization.UserRole) *mockUserReader {
	users := make(map[uint]*user.User, len(entries))
	for id, role := range entries {
		email, _ := uservo.NewEmail(fmt.Sprintf("user%d@example.com", id))
		now := biztime.NowUTC()
		u, err := user.ReconstructUser(id, fmt.Sprintf("usr_test%d", id), email, "User", fmt.Sprint(id), "", role, uservo.StatusActive, now, now)
		if err != nil {
			panic(err)
		}
		users[id] = u
	}
	return &mockUserReader{users: users}
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []servicerequest.ServiceRequestAssignedEvent
	staff []user.StaffMember
	err   error
}

func (n *recordingNotifier) NotifyAssigned(_ context.Context, staff user.StaffMember, event servicerequest.ServiceRequestAssignedEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, event)
	n.staff = append(n.staff, staff)
	return n.err
}

// firstRand always picks index 0; lastRand picks the last index.
type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

type lastRand struct{}

func (lastRand) IntN(n int) int { return n - 1 }

type mockLogger struct {
	mu     sync.Mutex
	infos  []string
	warns  []string
	errors []string
}

func (m *mockLogger) record(dst *[]string, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*dst = append(*dst, msg)
}

func (m *mockLogger) Debug(string, ...any)          {}
func (m *mockLogger) Info(msg string, _ ...any)     { m.record(&m.infos, msg) }
func (m *mockLogger) Warn(msg string, _ ...any)     { m.record(&m.warns, msg) }
func (m *mockLogger) Error(msg string, _ ...any)    { m.record(&m.errors, msg) }
func (m *mockLogger) With(...any) logger.Interface  { return m }
func (m *mockLogger) Named(string) logger.Interface { return m }
func (m *mockLogger) Debugw(string, ...any)         {}
func (m *mockLogger) Infow(msg string, _ ...any)    { m.record(&m.infos, msg) }
func (m *mockLogger) Warnw(msg string, _ ...any)    { m.record(&m.warns, msg) }
func (m *mockLogger) Errorw(msg string, _ ...any)   { m.record(&m.errors, msg) }

func (m *mockLogger) loggedInfo(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.infos, msg)
}

func (m *mockLogger) loggedError(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.errors, msg)
}

// fixture wires every use case against in-memory collaborators.
type fixture struct {
	requests    *memServiceRequestRepository
	attachments *memAttachmentRepository
	blobs       *storage.MemoryBlobStorage
	store       *services.AttachmentStore
	staff       *mockStaffDirectory
	users       *mockUserReader
	notifier    *recordingNotifier
	log         *mockLogger

	create   *CreateServiceRequestUseCase
	update   *UpdateServiceRequestStatusUseCase
	del      *DeleteServiceRequestUseCase
	get      *GetServiceRequestUseCase
	list     *ListServiceRequestsUseCase
	download *DownloadAttachmentUseCase
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	staff *mockStaffDirectory
	rnd   servicerequest.RandSource
}

func withStaff(dir *mockStaffDirectory) fixtureOption {
	return func(c *fixtureConfig) { c.staff = dir }
}

func withRand(rnd servicerequest.RandSource) fixtureOption {
	return func(c *fixtureConfig) { c.rnd = rnd }
}

func newFixture(opts ...fixtureOption) *fixture {
	cfg := fixtureConfig{staff: staffPool(), rnd: firstRand{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &fixture{
		requests:    newMemServiceRequestRepository(),
		attachments: newMemAttachmentRepository(),
		blobs:       storage.NewMemoryBlobStorage(),
		staff:       cfg.staff,
		users:       newUserReader(nil),
		notifier:    &recordingNotifier{},
		log:         &mockLogger{},
	}
	f.store = services.NewAttachmentStore(f.attachments, f.blobs, f.log)
	tx := &snapshotTx{requests: f.requests, attachments: f.attachments}
	renderer := markdown.NewRenderer()

	f.create = NewCreateServiceRequestUseCase(
		f.requests, f.store, f.staff, servicerequest.NewAssignmentPolicy(cfg.rnd),
		f.users, tx, renderer, f.notifier, f.log,
	)
	f.update = NewUpdateServiceRequestStatusUseCase(f.requests, f.log)
	f.del = NewDeleteServiceRequestUseCase(f.requests, f.attachments, f.store, tx, f.log)
	f.get = NewGetServiceRequestUseCase(f.requests, f.attachments, f.users, renderer, f.log)
	f.list = NewListServiceRequestsUseCase(f.requests, f.attachments, f.users, f.log)
	f.download = NewDownloadAttachmentUseCase(f.requests, f.attachments, f.store, f.log)
	return f
}

func customer(id uint) Caller { return Caller{UserID: id, Role: authorization.RoleCustomer} }
func staff(id uint) Caller    { return Caller{UserID: id, Role: authorization.RoleSupportStaff} }
func admin(id uint) Caller    { return Caller{UserID: id, Role: authorization.RoleAdmin} }
