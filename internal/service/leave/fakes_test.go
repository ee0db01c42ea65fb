package leave

import (
	"context"
	"sync"
	"time"

	"github.com/cutikita/leave-backend-go/internal/domain/employee"
	"github.com/cutikita/leave-backend-go/internal/domain/leave"
)

// fakeTxManager runs the callback directly; rollback semantics are the
// database's job and are covered by the repository integration tests.
type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveRequestRepository struct {
	CreateFn    func(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error)
	GetByIDFn   func(ctx context.Context, id string) (leave.LeaveRequest, error)
	ListFn      func(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error)
	DecideFn    func(ctx context.Context, id string, status leave.LeaveRequestStatus, note *string, decidedBy string, decidedAt time.Time) error
	AmendNoteFn func(ctx context.Context, id string, note string) error
}

func (f *fakeLeaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	return f.CreateFn(ctx, request)
}

func (f *fakeLeaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeLeaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	return f.ListFn(ctx, filter)
}

func (f *fakeLeaveRequestRepository) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, note *string, decidedBy string, decidedAt time.Time) error {
	return f.DecideFn(ctx, id, status, note, decidedBy, decidedAt)
}

func (f *fakeLeaveRequestRepository) AmendNote(ctx context.Context, id string, note string) error {
	return f.AmendNoteFn(ctx, id, note)
}

type fakeLeaveBalanceRepository struct {
	CreateFn               func(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error)
	GetByEmployeeFn        func(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error)
	GetByEmployeeAndTypeFn func(ctx context.Context, employeeID string, leaveType leave.LeaveType) (leave.LeaveBalance, error)
	DeductFn               func(ctx context.Context, employeeID string, leaveType leave.LeaveType, days int) error
	ReplaceFn              func(ctx context.Context, balance leave.LeaveBalance) error
}

func (f *fakeLeaveBalanceRepository) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	return f.CreateFn(ctx, balance)
}

func (f *fakeLeaveBalanceRepository) GetByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	return f.GetByEmployeeFn(ctx, employeeID)
}

func (f *fakeLeaveBalanceRepository) GetByEmployeeAndType(ctx context.Context, employeeID string, leaveType leave.LeaveType) (leave.LeaveBalance, error) {
	return f.GetByEmployeeAndTypeFn(ctx, employeeID, leaveType)
}

func (f *fakeLeaveBalanceRepository) Deduct(ctx context.Context, employeeID string, leaveType leave.LeaveType, days int) error {
	return f.DeductFn(ctx, employeeID, leaveType, days)
}

func (f *fakeLeaveBalanceRepository) Replace(ctx context.Context, balance leave.LeaveBalance) error {
	return f.ReplaceFn(ctx, balance)
}

type fakeEmployeeRepository struct {
	CreateFn     func(ctx context.Context, emp employee.Employee) (employee.Employee, error)
	GetByIDFn    func(ctx context.Context, id string) (employee.Employee, error)
	GetByEmailFn func(ctx context.Context, email string) (employee.Employee, error)
	ListIDsFn    func(ctx context.Context) ([]string, error)
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return f.CreateFn(ctx, emp)
}

func (f *fakeEmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeEmployeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return f.GetByEmailFn(ctx, email)
}

func (f *fakeEmployeeRepository) ListIDs(ctx context.Context) ([]string, error) {
	return f.ListIDsFn(ctx)
}

// memoryRequestStore is a mutex-guarded request repository whose Decide
// performs the same status compare-and-swap the SQL implementation does.
// Used to exercise concurrent decides without a database.
type memoryRequestStore struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
}

func newMemoryRequestStore(requests ...leave.LeaveRequest) *memoryRequestStore {
	store := &memoryRequestStore{requests: make(map[string]leave.LeaveRequest)}
	for _, r := range requests {
		store.requests[r.ID] = r
	}
	return store
}

func (m *memoryRequestStore) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[request.ID] = request
	return request, nil
}

func (m *memoryRequestStore) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	request, ok := m.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (m *memoryRequestStore) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := make([]leave.LeaveRequest, 0, len(m.requests))
	for _, r := range m.requests {
		requests = append(requests, r)
	}
	return requests, nil
}

func (m *memoryRequestStore) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, note *string, decidedBy string, decidedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if request.Status != leave.LeaveRequestStatusPending {
		return leave.ErrLeaveRequestDecided
	}

	request.Status = status
	request.AdminNote = note
	request.DecidedBy = &decidedBy
	request.DecidedAt = &decidedAt
	m.requests[id] = request
	return nil
}

func (m *memoryRequestStore) AmendNote(ctx context.Context, id string, note string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	request.AdminNote = &note
	m.requests[id] = request
	return nil
}
