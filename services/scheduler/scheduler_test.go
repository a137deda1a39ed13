package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appointmentRepo "medbuddy/database/repository/appointment"
	"medbuddy/models"
)

// fakeLedger keeps appointments and slot occupancy in memory, mirroring the
// conditional transition semantics of the Mongo repositories.
type fakeLedger struct {
	mu          sync.Mutex
	appts       map[string]*models.Appointment
	slotBooked  map[string]bool
	listErr     error
	remindedErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		appts:      make(map[string]*models.Appointment),
		slotBooked: make(map[string]bool),
	}
}

func (f *fakeLedger) add(a models.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := a
	f.appts[a.ID] = &cp
	f.slotBooked[a.SlotID] = a.Status == models.StatusReserved || a.Status == models.StatusConfirmed
}

func (f *fakeLedger) get(id string) models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.appts[id]
}

func (f *fakeLedger) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeLedger) GetByCode(ctx context.Context, code string) (*models.Appointment, error) {
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeLedger) GetByMobile(ctx context.Context, mobile string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeLedger) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeLedger) ListReservedBefore(ctx context.Context, cutoff time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Status == models.StatusReserved && !a.CreatedAt.After(cutoff) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeLedger) ListRemindable(ctx context.Context, from, until time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Appointment
	for _, a := range f.appts {
		active := a.Status == models.StatusReserved || a.Status == models.StatusConfirmed
		inWindow := !a.StartAt.Before(from) && !a.StartAt.After(until)
		if active && inWindow && a.LastRemindedAt == nil {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeLedger) MarkReminded(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.remindedErr != nil {
		return f.remindedErr
	}
	a, ok := f.appts[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	stamp := at
	a.LastRemindedAt = &stamp
	return nil
}

func (f *fakeLedger) UpdateMeta(ctx context.Context, id, meetingLink, remarks string, at time.Time) error {
	return nil
}

func (f *fakeLedger) Stats(ctx context.Context, today string) (models.DashboardStats, error) {
	return models.DashboardStats{}, nil
}

// fakeReservations implements the expiry side of the reservation repository
// against the same ledger.
type fakeReservations struct {
	ledger    *fakeLedger
	expireErr map[string]error
}

func (f *fakeReservations) BookSlot(ctx context.Context, slotID string, appt *models.Appointment) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeReservations) CancelByCode(ctx context.Context, code string, at time.Time) (bool, error) {
	return false, errors.New("not used")
}

func (f *fakeReservations) ExpireReservation(ctx context.Context, appointmentID string, at time.Time) (bool, error) {
	if err := f.expireErr[appointmentID]; err != nil {
		return false, err
	}
	f.ledger.mu.Lock()
	defer f.ledger.mu.Unlock()
	a, ok := f.ledger.appts[appointmentID]
	if !ok || a.Status != models.StatusReserved {
		return false, nil
	}
	a.Status = models.StatusExpired
	a.UpdatedAt = at
	f.ledger.slotBooked[a.SlotID] = false
	return true, nil
}

func (f *fakeReservations) UpdateStatus(ctx context.Context, appointmentID string, from, to models.Status, meetingLink, remarks string, at time.Time) (bool, error) {
	return false, errors.New("not used")
}

// fakeNotifier records reminder sends and can be told to fail.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []string
	sendErr error
}

func (f *fakeNotifier) SendReminder(ctx context.Context, appt models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, appt.ID)
	return nil
}

func (f *fakeNotifier) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func reserved(id, slotID string, createdAt, startAt time.Time) models.Appointment {
	return models.Appointment{
		ID:        id,
		SlotID:    slotID,
		Status:    models.StatusReserved,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		StartAt:   startAt,
	}
}

func TestExpirySweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 8, 12, 0, 0, 0, time.Local)
	start := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)

	newSweeper := func(ledger *fakeLedger) (*ExpiryScheduler, *fakeReservations) {
		res := &fakeReservations{ledger: ledger}
		return &ExpiryScheduler{
			Ledger:       ledger,
			Reservations: res,
			Expiry:       30 * time.Minute,
			Now:          func() time.Time { return now },
		}, res
	}

	t.Run("ExpiresStaleReservation", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.add(reserved("a1", "s1", now.Add(-45*time.Minute), start))
		sweeper, _ := newSweeper(ledger)

		if err := sweeper.RunExpirySweep(ctx); err != nil {
			t.Fatalf("RunExpirySweep: %v", err)
		}
		if got := ledger.get("a1").Status; got != models.StatusExpired {
			t.Errorf("status = %s, want EXPIRED", got)
		}
		if ledger.slotBooked["s1"] {
			t.Error("slot should be released on expiry")
		}
	})

	t.Run("LeavesFreshReservation", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.add(reserved("a1", "s1", now.Add(-10*time.Minute), start))
		sweeper, _ := newSweeper(ledger)

		if err := sweeper.RunExpirySweep(ctx); err != nil {
			t.Fatalf("RunExpirySweep: %v", err)
		}
		if got := ledger.get("a1").Status; got != models.StatusReserved {
			t.Errorf("status = %s, want RESERVED", got)
		}
		if !ledger.slotBooked["s1"] {
			t.Error("slot must stay booked")
		}
	})

	t.Run("SkipsConfirmedAndCancelled", func(t *testing.T) {
		ledger := newFakeLedger()
		confirmed := reserved("a1", "s1", now.Add(-2*time.Hour), start)
		confirmed.Status = models.StatusConfirmed
		cancelled := reserved("a2", "s2", now.Add(-2*time.Hour), start)
		cancelled.Status = models.StatusCancelled
		ledger.add(confirmed)
		ledger.add(cancelled)
		sweeper, _ := newSweeper(ledger)

		if err := sweeper.RunExpirySweep(ctx); err != nil {
			t.Fatalf("RunExpirySweep: %v", err)
		}
		if got := ledger.get("a1").Status; got != models.StatusConfirmed {
			t.Errorf("confirmed row changed to %s", got)
		}
		if got := ledger.get("a2").Status; got != models.StatusCancelled {
			t.Errorf("cancelled row changed to %s", got)
		}
	})

	t.Run("RepeatSweepIsNoop", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.add(reserved("a1", "s1", now.Add(-45*time.Minute), start))
		sweeper, _ := newSweeper(ledger)

		if err := sweeper.RunExpirySweep(ctx); err != nil {
			t.Fatalf("first sweep: %v", err)
		}
		if err := sweeper.RunExpirySweep(ctx); err != nil {
			t.Fatalf("second sweep: %v", err)
		}
		if got := ledger.get("a1").Status; got != models.StatusExpired {
			t.Errorf("status = %s, want EXPIRED", got)
		}
	})

	t.Run("OneFailureDoesNotStopTheSweep", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.add(reserved("a1", "s1", now.Add(-45*time.Minute), start))
		ledger.add(reserved("a2", "s2", now.Add(-45*time.Minute), start))
		sweeper, res := newSweeper(ledger)
		res.expireErr = map[string]error{"a1": errors.New("write conflict")}

		if err := sweeper.RunExpirySweep(ctx); err != nil {
			t.Fatalf("RunExpirySweep: %v", err)
		}
		if got := ledger.get("a2").Status; got != models.StatusExpired {
			t.Errorf("a2 status = %s, want EXPIRED despite a1 failing", got)
		}
	})

	t.Run("ListingFailureAbandonsRun", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.listErr = errors.New("connection reset")
		sweeper, _ := newSweeper(ledger)

		if err := sweeper.RunExpirySweep(ctx); err == nil {
			t.Fatal("expected an error when listing fails")
		}
	})
}

func TestReminderSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.Local)

	newSweeper := func(ledger *fakeLedger, notifier *fakeNotifier) *ReminderScheduler {
		return &ReminderScheduler{
			Ledger:    ledger,
			Notifier:  notifier,
			Lookahead: 24 * time.Hour,
			Now:       func() time.Time { return now },
		}
	}

	t.Run("RemindsOnceInsideWindow", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.add(reserved("a1", "s1", now.Add(-time.Hour), now.Add(2*time.Hour)))
		notifier := &fakeNotifier{}
		sweeper := newSweeper(ledger, notifier)

		if err := sweeper.RunReminderSweep(ctx); err != nil {
			t.Fatalf("RunReminderSweep: %v", err)
		}
		if notifier.sentCount() != 1 {
			t.Fatalf("sent = %d, want 1", notifier.sentCount())
		}
		if ledger.get("a1").LastRemindedAt == nil {
			t.Error("last_reminded_at should be stamped")
		}

		// Second sweep must not re-send.
		if err := sweeper.RunReminderSweep(ctx); err != nil {
			t.Fatalf("second sweep: %v", err)
		}
		if notifier.sentCount() != 1 {
			t.Errorf("sent = %d after second sweep, want still 1", notifier.sentCount())
		}
	})

	t.Run("SkipsOutsideWindow", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.add(reserved("far", "s1", now, now.Add(48*time.Hour)))
		ledger.add(reserved("past", "s2", now, now.Add(-time.Hour)))
		notifier := &fakeNotifier{}
		sweeper := newSweeper(ledger, notifier)

		if err := sweeper.RunReminderSweep(ctx); err != nil {
			t.Fatalf("RunReminderSweep: %v", err)
		}
		if notifier.sentCount() != 0 {
			t.Errorf("sent = %d, want 0", notifier.sentCount())
		}
	})

	t.Run("SkipsInactiveRows", func(t *testing.T) {
		ledger := newFakeLedger()
		cancelled := reserved("a1", "s1", now, now.Add(2*time.Hour))
		cancelled.Status = models.StatusCancelled
		ledger.add(cancelled)
		notifier := &fakeNotifier{}
		sweeper := newSweeper(ledger, notifier)

		if err := sweeper.RunReminderSweep(ctx); err != nil {
			t.Fatalf("RunReminderSweep: %v", err)
		}
		if notifier.sentCount() != 0 {
			t.Errorf("sent = %d, want 0", notifier.sentCount())
		}
	})

	t.Run("RemindsConfirmed", func(t *testing.T) {
		ledger := newFakeLedger()
		confirmed := reserved("a1", "s1", now, now.Add(2*time.Hour))
		confirmed.Status = models.StatusConfirmed
		ledger.add(confirmed)
		notifier := &fakeNotifier{}
		sweeper := newSweeper(ledger, notifier)

		if err := sweeper.RunReminderSweep(ctx); err != nil {
			t.Fatalf("RunReminderSweep: %v", err)
		}
		if notifier.sentCount() != 1 {
			t.Errorf("sent = %d, want 1", notifier.sentCount())
		}
	})

	t.Run("FailedSendRetriesNextSweep", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.add(reserved("a1", "s1", now, now.Add(2*time.Hour)))
		notifier := &fakeNotifier{sendErr: errors.New("queue unreachable")}
		sweeper := newSweeper(ledger, notifier)

		if err := sweeper.RunReminderSweep(ctx); err != nil {
			t.Fatalf("RunReminderSweep: %v", err)
		}
		if ledger.get("a1").LastRemindedAt != nil {
			t.Fatal("failed send must not stamp last_reminded_at")
		}

		notifier.mu.Lock()
		notifier.sendErr = nil
		notifier.mu.Unlock()
		if err := sweeper.RunReminderSweep(ctx); err != nil {
			t.Fatalf("retry sweep: %v", err)
		}
		if notifier.sentCount() != 1 {
			t.Errorf("sent = %d after retry, want 1", notifier.sentCount())
		}
		if ledger.get("a1").LastRemindedAt == nil {
			t.Error("retry should stamp last_reminded_at")
		}
	})
}
