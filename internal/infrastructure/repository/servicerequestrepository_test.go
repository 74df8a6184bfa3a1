package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicedesk/internal/domain/servicerequest"
	vo "servicedesk/internal/domain/servicerequest/valueobjects"
	"servicedesk/internal/infrastructure/persistence/models"
	"servicedesk/internal/shared/authorization"
	"servicedesk/internal/shared/db"
	"servicedesk/internal/shared/query"
)

type srFixture struct {
	requests    *ServiceRequestRepository
	attachments *AttachmentRepository
	users       *UserRepository
	txMgr       *db.TransactionManager
	customerID  uint
	staffID     uint
}

func newSRFixture(t *testing.T) *srFixture {
	t.Helper()

	gdb := setupTestDB(t)
	users := NewUserRepository(gdb, testLogger())
	customer := seedUser(t, users, "customer@example.com", authorization.RoleCustomer)
	staff := seedUser(t, users, "staff@example.com", authorization.RoleSupportStaff)

	return &srFixture{
		requests:    NewServiceRequestRepository(gdb),
		attachments: NewAttachmentRepository(gdb),
		users:       users,
		txMgr:       db.NewTransactionManager(gdb),
		customerID:  customer.ID(),
		staffID:     staff.ID(),
	}
}

func (f *srFixture) create(t *testing.T, title string, assign bool) *servicerequest.ServiceRequest {
	t.Helper()

	sr := newRequest(t, f.customerID, title)
	if assign {
		require.NoError(t, sr.AssignTo(f.staffID))
	}
	require.NoError(t, f.requests.Create(t.Context(), sr))
	return sr
}

func TestServiceRequestRepository_CreateAndGet(t *testing.T) {
	f := newSRFixture(t)
	ctx := t.Context()

	sr := f.create(t, "Broken boiler", true)
	require.NotZero(t, sr.ID())

	got, err := f.requests.GetBySID(ctx, sr.SID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sr.ID(), got.ID())
	assert.Equal(t, "Broken boiler", got.Title())
	assert.Equal(t, vo.StatusPending, got.Status())
	assert.Equal(t, vo.ServiceTypeRepair, got.ServiceType())
	require.NotNil(t, got.SupportStaffID())
	assert.Equal(t, f.staffID, *got.SupportStaffID())
	// assignment counts as a change
	assert.Equal(t, 2, got.Version())
	assert.True(t, sr.CreatedAt().Equal(got.CreatedAt()))

	byID, err := f.requests.GetByID(ctx, sr.ID())
	require.NoError(t, err)
	assert.Equal(t, sr.SID(), byID.SID())
}

func TestModels_PublicIDColumnIsSID(t *testing.T) {
	gdb := setupTestDB(t)

	for _, model := range models.All() {
		assert.True(t, gdb.Migrator().HasColumn(model, "sid"), "%T", model)
		assert.False(t, gdb.Migrator().HasColumn(model, "s_id"), "%T", model)
	}
}

func TestServiceRequestRepository_UnassignedRoundTrip(t *testing.T) {
	f := newSRFixture(t)

	sr := f.create(t, "No staff yet", false)

	got, err := f.requests.GetByID(t.Context(), sr.ID())
	require.NoError(t, err)
	assert.Nil(t, got.SupportStaffID())
}

func TestServiceRequestRepository_MissingIsNil(t *testing.T) {
	f := newSRFixture(t)

	got, err := f.requests.GetBySID(t.Context(), "sr_missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = f.requests.GetByID(t.Context(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestServiceRequestRepository_UpdateStatus(t *testing.T) {
	f := newSRFixture(t)
	ctx := t.Context()
	sr := f.create(t, "Broken boiler", true)

	changed, err := sr.ChangeStatus(vo.StatusInProgress, f.staffID)
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, f.requests.UpdateStatus(ctx, sr))

	got, err := f.requests.GetByID(ctx, sr.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress, got.Status())
	assert.Equal(t, 3, got.Version())
	assert.True(t, got.UpdatedAt().After(got.CreatedAt()))
}

func TestServiceRequestRepository_UpdateStatusTouchesOnlyMutableColumns(t *testing.T) {
	f := newSRFixture(t)
	ctx := t.Context()
	sr := f.create(t, "Original title", true)

	stale, err := f.requests.GetByID(ctx, sr.ID())
	require.NoError(t, err)

	// another writer changes the title behind our back
	require.NoError(t, f.requests.db.Model(&models.ServiceRequestModel{}).
		Where("id = ?", sr.ID()).
		Update("title", "Edited elsewhere").Error)

	_, err = stale.ChangeStatus(vo.StatusResolved, f.staffID)
	require.NoError(t, err)
	require.NoError(t, f.requests.UpdateStatus(ctx, stale))

	got, err := f.requests.GetByID(ctx, sr.ID())
	require.NoError(t, err)
	assert.Equal(t, "Edited elsewhere", got.Title())
	assert.Equal(t, vo.StatusResolved, got.Status())
}

func TestServiceRequestRepository_Delete(t *testing.T) {
	f := newSRFixture(t)
	ctx := t.Context()
	sr := f.create(t, "Short lived", false)

	require.NoError(t, f.requests.Delete(ctx, sr.ID()))

	got, err := f.requests.GetByID(ctx, sr.ID())
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, f.requests.Delete(ctx, sr.ID()))
}

func TestServiceRequestRepository_ListScopesAndPages(t *testing.T) {
	f := newSRFixture(t)
	ctx := t.Context()

	other := seedUser(t, f.users, "other@example.com", authorization.RoleCustomer)
	var created []*servicerequest.ServiceRequest
	for i := range 5 {
		created = append(created, f.create(t, fmt.Sprintf("Request %d", i), i%2 == 0))
	}
	foreign := newRequest(t, other.ID(), "Not mine at all")
	require.NoError(t, f.requests.Create(ctx, foreign))

	customerID := f.customerID
	page1, total, err := f.requests.List(ctx, servicerequest.ListFilter{
		CustomerID: &customerID,
		PageFilter: query.NewPageFilter(1, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)

	page3, _, err := f.requests.List(ctx, servicerequest.ListFilter{
		CustomerID: &customerID,
		PageFilter: query.NewPageFilter(3, 2),
	})
	require.NoError(t, err)
	require.Len(t, page3, 1)

	// newest first, ties broken by id
	assert.Equal(t, created[4].ID(), page1[0].ID())
	assert.Equal(t, created[3].ID(), page1[1].ID())
	assert.Equal(t, created[0].ID(), page3[0].ID())

	beyond, total, err := f.requests.List(ctx, servicerequest.ListFilter{
		CustomerID: &customerID,
		PageFilter: query.NewPageFilter(9, 2),
	})
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.Equal(t, int64(5), total)

	staffID := f.staffID
	assigned, total, err := f.requests.List(ctx, servicerequest.ListFilter{
		SupportStaffID: &staffID,
		PageFilter:     query.NewPageFilter(1, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, sr := range assigned {
		assert.True(t, sr.IsAssignedTo(staffID))
	}
}

func TestServiceRequestRepository_RollbackDiscardsCreate(t *testing.T) {
	f := newSRFixture(t)
	ctx := t.Context()
	boom := errors.New("boom")

	var sid string
	err := f.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		sr := newRequest(t, f.customerID, "Rolled back")
		if err := f.requests.Create(txCtx, sr); err != nil {
			return err
		}
		sid = sr.SID()
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := f.requests.GetBySID(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, got)
}
