package reset

import (
	"testing"
	"time"

	"github.com/pravinpanwar/impulse/internal/models"
	"github.com/pravinpanwar/impulse/internal/store"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var day1 = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store *store.Store
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Goal{}, &models.Task{}, &models.Daily{},
		&models.DailyHistory{}, &models.Note{}, &models.UserStats{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	f := &fixture{now: day1}
	st, err := store.New(store.Opts{DB: db, Now: func() time.Time { return f.now }})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	f.store = st
	return f
}

func (f *fixture) resetter(t *testing.T) *Resetter {
	t.Helper()
	r, err := New(Opts{Store: f.store, Now: func() time.Time { return f.now }})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func (f *fixture) seedCompletedDaily(t *testing.T, name string) (uint, uint) {
	t.Helper()
	user, err := f.store.CreateUser(name, name+"@example.com", "hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	daily, err := f.store.CreateDaily(user.ID, "stretch", nil, nil)
	if err != nil {
		t.Fatalf("seed daily: %v", err)
	}
	if _, err := f.store.CompleteDaily(daily.ID, user.ID); err != nil {
		t.Fatalf("complete daily: %v", err)
	}
	return user.ID, daily.ID
}

func TestEnsureToday_FirstCallResets(t *testing.T) {
	f := newFixture(t)
	r := f.resetter(t)
	uid, _ := f.seedCompletedDaily(t, "alice")

	// No reset has ever been stamped, so the first read rolls over.
	ran, err := r.EnsureToday(uid)
	if err != nil {
		t.Fatalf("EnsureToday: %v", err)
	}
	if !ran {
		t.Error("first call did not reset")
	}

	pending, _ := f.store.PendingDailies(uid)
	if len(pending) != 1 {
		t.Errorf("pending = %d, want 1 after rollover", len(pending))
	}
}

func TestEnsureToday_SecondCallSameDayNoop(t *testing.T) {
	f := newFixture(t)
	r := f.resetter(t)
	uid, dailyID := f.seedCompletedDaily(t, "alice")

	if _, err := r.EnsureToday(uid); err != nil {
		t.Fatalf("EnsureToday: %v", err)
	}
	// Complete again after the rollover; a same-day re-check must not
	// clear it.
	if _, err := f.store.CompleteDaily(dailyID, uid); err != nil {
		t.Fatalf("CompleteDaily: %v", err)
	}

	ran, err := r.EnsureToday(uid)
	if err != nil {
		t.Fatalf("EnsureToday: %v", err)
	}
	if ran {
		t.Error("same-day call reset again")
	}
	pending, _ := f.store.PendingDailies(uid)
	if len(pending) != 0 {
		t.Errorf("pending = %d, want 0", len(pending))
	}
}

func TestEnsureToday_NextDayResetsAgain(t *testing.T) {
	f := newFixture(t)
	r := f.resetter(t)
	uid, dailyID := f.seedCompletedDaily(t, "alice")

	if _, err := r.EnsureToday(uid); err != nil {
		t.Fatalf("EnsureToday: %v", err)
	}
	if _, err := f.store.CompleteDaily(dailyID, uid); err != nil {
		t.Fatalf("CompleteDaily: %v", err)
	}

	f.now = day1.Add(24 * time.Hour)
	ran, err := r.EnsureToday(uid)
	if err != nil {
		t.Fatalf("EnsureToday: %v", err)
	}
	if !ran {
		t.Error("next day did not reset")
	}

	// Streak and history survive the rollover.
	dailies, _ := f.store.Dailies(uid)
	if dailies[0].CompletedToday {
		t.Error("flag not cleared")
	}
	if dailies[0].Streak != 2 {
		t.Errorf("streak = %d, want 2", dailies[0].Streak)
	}
	history, _ := f.store.DailyHistory(dailyID, uid)
	if len(history) != 2 {
		t.Errorf("history = %d events, want 2", len(history))
	}
}

func TestSweepAll_ResetsEveryUser(t *testing.T) {
	f := newFixture(t)
	r := f.resetter(t)
	alice, _ := f.seedCompletedDaily(t, "alice")
	bob, _ := f.seedCompletedDaily(t, "bob")

	r.SweepAll()

	for _, uid := range []uint{alice, bob} {
		pending, _ := f.store.PendingDailies(uid)
		if len(pending) != 1 {
			t.Errorf("user %d pending = %d, want 1", uid, len(pending))
		}
	}
}

func TestSchedule_AcceptsSpec(t *testing.T) {
	f := newFixture(t)
	r := f.resetter(t)

	c := cron.New()
	if _, err := r.Schedule(c); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("entries = %d, want 1", len(c.Entries()))
	}
}
