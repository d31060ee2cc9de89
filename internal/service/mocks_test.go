package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"stayhub-backend/internal/domain"
	"stayhub-backend/internal/utils"

	"github.com/stretchr/testify/mock"
)

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPropertyRepo) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) ListBookable(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) UpdateRate(ctx context.Context, id int32, rate domain.RateSchedule) error {
	args := m.Called(ctx, id, rate)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Overlaps(ctx context.Context, propertyID int32, from, to time.Time, excludeID int32) (bool, error) {
	args := m.Called(ctx, propertyID, from, to, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) Cancel(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByProperty(ctx context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, propertyID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListConfirmedInWindow(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, propertyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListArrivals(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn, checkOut time.Time, totalCents int64) error {
	args := m.Called(ctx, guestEmail, guestName, propertyTitle, checkIn, checkOut, totalCents)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancellation(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn time.Time) error {
	args := m.Called(ctx, guestEmail, guestName, propertyTitle, checkIn)
	return args.Error(0)
}
func (m *MockEmailService) SendCheckInReminder(ctx context.Context, guestEmail, guestName, propertyTitle string, checkIn time.Time) error {
	args := m.Called(ctx, guestEmail, guestName, propertyTitle, checkIn)
	return args.Error(0)
}

// fakeCalendar is an in-memory AvailabilityRepository with the same range
// semantics as the postgres implementation: inclusive range writes, half-open
// IsRangeFree, missing days implicitly available. The booking and calendar
// scenario tests need real day state evolving across calls, which a
// call-by-call mock cannot express.
type fakeCalendar struct {
	mu         sync.Mutex
	days       map[string]domain.AvailabilityDay
	failUpsert bool
	failSeed   map[int32]bool
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{
		days:     make(map[string]domain.AvailabilityDay),
		failSeed: make(map[int32]bool),
	}
}

func calKey(propertyID int32, day time.Time) string {
	return fmt.Sprintf("%d/%s", propertyID, utils.FormatDate(day))
}

func (f *fakeCalendar) day(propertyID int32, day time.Time) (domain.AvailabilityDay, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.days[calKey(propertyID, day)]
	return d, ok
}

func (f *fakeCalendar) GetRange(_ context.Context, propertyID int32, from, to time.Time) ([]domain.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AvailabilityDay
	utils.EachDay(from, to, func(day time.Time) {
		if d, ok := f.days[calKey(propertyID, day)]; ok {
			out = append(out, d)
		}
	})
	return out, nil
}

func (f *fakeCalendar) SeedRange(_ context.Context, propertyID int32, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSeed[propertyID] {
		return 0, errors.New("seed failed")
	}
	created := 0
	utils.EachDay(from, to, func(day time.Time) {
		key := calKey(propertyID, day)
		if _, ok := f.days[key]; ok {
			return
		}
		f.days[key] = domain.AvailabilityDay{
			PropertyID: propertyID,
			Day:        day,
			Status:     domain.DayStatusAvailable,
		}
		created++
	})
	return created, nil
}

func (f *fakeCalendar) UpsertRange(_ context.Context, propertyID int32, from, to time.Time, status domain.DayStatus, priceCents *int64, note *domain.DayNote) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpsert {
		return 0, errors.New("upsert failed")
	}
	written := 0
	utils.EachDay(from, to, func(day time.Time) {
		key := calKey(propertyID, day)
		d := f.days[key]
		d.PropertyID = propertyID
		d.Day = day
		d.Status = status
		d.Note = note
		if priceCents != nil {
			d.PriceCents = priceCents
		}
		f.days[key] = d
		written++
	})
	return written, nil
}

func (f *fakeCalendar) ResetRange(_ context.Context, propertyID int32, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	written := 0
	utils.EachDay(from, to, func(day time.Time) {
		f.days[calKey(propertyID, day)] = domain.AvailabilityDay{
			PropertyID: propertyID,
			Day:        day,
			Status:     domain.DayStatusAvailable,
		}
		written++
	})
	return written, nil
}

func (f *fakeCalendar) IsRangeFree(_ context.Context, propertyID int32, from, to time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	free := true
	utils.EachNight(from, to, func(day time.Time) {
		if d, ok := f.days[calKey(propertyID, day)]; ok && d.Status != domain.DayStatusAvailable {
			free = false
		}
	})
	return free, nil
}

func (f *fakeCalendar) SetDayPrice(_ context.Context, propertyID int32, day time.Time, priceCents int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := calKey(propertyID, day)
	d, ok := f.days[key]
	if !ok {
		d = domain.AvailabilityDay{PropertyID: propertyID, Day: day, Status: domain.DayStatusAvailable}
	}
	d.PriceCents = &priceCents
	f.days[key] = d
	return nil
}

// memBookings is an in-memory BookingRepository whose Create holds a single
// mutex across the overlap check and the insert, mirroring the row-lock
// guarantee of the postgres implementation. The concurrent double-booking
// test exercises exactly that critical section.
type memBookings struct {
	mu     sync.Mutex
	nextID int32
	items  []domain.Booking
}

func (m *memBookings) Create(_ context.Context, b *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		existing := &m.items[i]
		if existing.PropertyID != b.PropertyID || existing.Status != domain.BookingStatusConfirmed {
			continue
		}
		if existing.Overlaps(b.CheckIn, b.CheckOut) {
			return domain.ErrConflict
		}
	}
	m.nextID++
	b.ID = m.nextID
	b.CreatedOn = time.Now()
	b.UpdatedOn = b.CreatedOn
	m.items = append(m.items, *b)
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id int32) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			b := m.items[i]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memBookings) Overlaps(_ context.Context, propertyID int32, from, to time.Time, excludeID int32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		b := &m.items[i]
		if b.PropertyID != propertyID || b.Status != domain.BookingStatusConfirmed || b.ID == excludeID {
			continue
		}
		if b.Overlaps(from, to) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookings) Cancel(_ context.Context, id int32) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].Status == domain.BookingStatusConfirmed {
			m.items[i].Status = domain.BookingStatusCancelled
			m.items[i].UpdatedOn = time.Now()
			b := m.items[i]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memBookings) ListByProperty(_ context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []domain.Booking
	for i := range m.items {
		b := m.items[i]
		if b.PropertyID != propertyID {
			continue
		}
		if status != "" && string(b.Status) != status {
			continue
		}
		matched = append(matched, b)
	}
	total := int32(len(matched))
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *memBookings) ListConfirmedInWindow(_ context.Context, propertyID int32, from, to time.Time) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for i := range m.items {
		b := m.items[i]
		if b.PropertyID == propertyID && b.Status == domain.BookingStatusConfirmed && b.Overlaps(from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) ListArrivals(_ context.Context, day time.Time) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for i := range m.items {
		b := m.items[i]
		if b.Status == domain.BookingStatusConfirmed && b.CheckIn.Equal(day) {
			out = append(out, b)
		}
	}
	return out, nil
}
