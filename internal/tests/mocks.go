package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[int64]*domain.User)}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID > m.nextID {
		m.nextID = user.ID
	}
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Phone == user.Phone {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Phone == phone {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK RIDER REPOSITORY
// ──────────────────────────────────────────────

// MockRiderRepository is a mock implementation of RiderRepository.
type MockRiderRepository struct {
	mu     sync.RWMutex
	riders map[int64]*domain.Rider
	nextID int64

	// Counters for verification
	UpdateStatusCallCount int32

	// Error injection
	UpdateStatusError error
}

// NewMockRiderRepository creates a new mock rider repository.
func NewMockRiderRepository() *MockRiderRepository {
	return &MockRiderRepository{riders: make(map[int64]*domain.Rider)}
}

// AddRider adds a rider to the mock repository.
func (m *MockRiderRepository) AddRider(rider *domain.Rider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rider.ID > m.nextID {
		m.nextID = rider.ID
	}
	m.riders[rider.ID] = rider
}

// GetRider returns the stored rider for test assertions.
func (m *MockRiderRepository) GetRider(id int64) *domain.Rider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.riders[id]
}

func (m *MockRiderRepository) Create(ctx context.Context, rider *domain.Rider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.riders {
		if r.LicensePlate == rider.LicensePlate {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	rider.ID = m.nextID
	m.riders[rider.ID] = rider
	return nil
}

func (m *MockRiderRepository) GetByID(ctx context.Context, id int64) (*domain.Rider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rider, ok := m.riders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *rider
	return &copy, nil
}

func (m *MockRiderRepository) GetAvailable(ctx context.Context) ([]*domain.Rider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Rider
	for _, r := range m.riders {
		if r.Status == domain.RiderStatusAvailable {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockRiderRepository) GetAll(ctx context.Context) ([]*domain.Rider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Rider, 0, len(m.riders))
	for _, r := range m.riders {
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRiderRepository) UpdateStatus(ctx context.Context, id int64, status domain.RiderStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rider, ok := m.riders[id]
	if !ok {
		return repository.ErrNotFound
	}
	rider.Status = status
	return nil
}

func (m *MockRiderRepository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.RiderStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rider, ok := m.riders[id]
	if !ok || rider.Status != from {
		return false, nil
	}
	rider.Status = to
	return true, nil
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository. It
// shares the rider mock so the atomic claim and release semantics match the
// real store.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[int64]*domain.Booking
	nextID   int64
	riders   *MockRiderRepository

	// Counters for verification
	CreateAssignedCallCount int32

	// Error injection
	CreateAssignedError error
	SetStatusError      error

	// FailClaims forces that many initial claims to report a lost rider.
	FailClaims int32
}

// NewMockBookingRepository creates a new mock booking repository bound to
// the given rider repository.
func NewMockBookingRepository(riders *MockRiderRepository) *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[int64]*domain.Booking),
		riders:   riders,
	}
}

// BookingCount returns the number of stored bookings.
func (m *MockBookingRepository) BookingCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

func (m *MockBookingRepository) CreateAssigned(ctx context.Context, booking *domain.Booking) (bool, error) {
	atomic.AddInt32(&m.CreateAssignedCallCount, 1)
	if m.CreateAssignedError != nil {
		return false, m.CreateAssignedError
	}
	if atomic.AddInt32(&m.FailClaims, -1) >= 0 {
		return false, nil
	}

	claimed, err := m.riders.UpdateStatusIf(ctx, booking.RiderID, domain.RiderStatusAvailable, domain.RiderStatusBusy)
	if err != nil || !claimed {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	booking.ID = m.nextID
	copy := *booking
	m.bookings[booking.ID] = &copy
	return true, nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		copy := *b
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockBookingRepository) SetStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if m.SetStatusError != nil {
		return nil, m.SetStatusError
	}
	m.mu.Lock()
	booking, ok := m.bookings[id]
	if !ok {
		m.mu.Unlock()
		return nil, repository.ErrNotFound
	}
	booking.Status = status
	copy := *booking
	m.mu.Unlock()

	if status.Terminal() && copy.RiderID != 0 {
		if err := m.riders.UpdateStatus(ctx, copy.RiderID, domain.RiderStatusAvailable); err != nil && err != repository.ErrNotFound {
			return nil, err
		}
	}

	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK CACHE / LOCK STORES
// ──────────────────────────────────────────────

// MockCacheStore is an in-memory CacheStoreInterface.
type MockCacheStore struct {
	mu       sync.RWMutex
	bookings map[int64]*domain.Booking

	// Counters for verification
	HitCount  int32
	MissCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{bookings: make(map[int64]*domain.Booking)}
}

func (m *MockCacheStore) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[bookingID]
	if !ok {
		atomic.AddInt32(&m.MissCount, 1)
		return nil, nil
	}
	atomic.AddInt32(&m.HitCount, 1)
	copy := *booking
	return &copy, nil
}

func (m *MockCacheStore) SetBooking(ctx context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

func (m *MockCacheStore) InvalidateBooking(ctx context.Context, bookingID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookings, bookingID)
	return nil
}

// MockLockStore is an in-memory LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[int64]bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[int64]bool)}
}

func (m *MockLockStore) AcquireBookingLock(ctx context.Context, bookingID int64, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[bookingID] {
		return false, nil
	}
	m.locks[bookingID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseBookingLock(ctx context.Context, bookingID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, bookingID)
	return nil
}
