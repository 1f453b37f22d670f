package service

import (
	"context"
	"errors"
	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/internal/util"
	"habit_tracker_backend/pkg/database"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm/logger"
)

type testEnv struct {
	store    *repository.Store
	calendar *util.Calendar
	habits   *HabitService
	days     *DayService
	toggles  *ToggleService
	summary  *SummaryService
}

func setupTestEnv(t *testing.T, cache SummaryCache) *testEnv {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := database.Open(cfg, logger.Silent)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := repository.NewStore(db)
	cal := util.NewCalendar(time.UTC)
	cal.Now = func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) }

	return &testEnv{
		store:    store,
		calendar: cal,
		habits:   NewHabitService(store, cal, cache),
		days:     NewDayService(store, cal),
		toggles:  NewToggleService(store, cal, cache),
		summary:  NewSummaryService(store, cal, cache, time.Minute),
	}
}

// setNow 之后创建的习惯以该日为 created_at
func (e *testEnv) setNow(y int, m time.Month, d int) {
	e.calendar.Now = func() time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func containsHabit(habits []model.Habit, id string) bool {
	for _, h := range habits {
		if h.ID == id {
			return true
		}
	}
	return false
}

func TestCreateHabitValidation(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		title    string
		weekDays []int
		field    string
	}{
		{"empty title", "", []int{1}, "title"},
		{"blank title", "   ", []int{1}, "title"},
		{"weekday too large", "Run", []int{1, 7}, "weekDays"},
		{"negative weekday", "Run", []int{-1}, "weekDays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.habits.CreateHabit(ctx, tt.title, tt.weekDays)
			var verr *util.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestCreateHabitSetsCanonicalCreatedAt(t *testing.T) {
	env := setupTestEnv(t, nil)

	habit, err := env.habits.CreateHabit(context.Background(), "  Run  ", []int{1, 3, 5, 3})
	if err != nil {
		t.Fatalf("CreateHabit error: %v", err)
	}
	if habit.Title != "Run" {
		t.Errorf("expected trimmed title, got %q", habit.Title)
	}
	if !habit.CreatedAt.Equal(date(2024, 1, 1)) {
		t.Errorf("expected created_at at midnight 2024-01-01, got %v", habit.CreatedAt)
	}
	if got := habit.WeekDayValues(); len(got) != 3 {
		t.Errorf("expected duplicates to collapse to 3 weekdays, got %v", got)
	}
}

func TestCreateHabitWithoutWeekDaysIsNeverPossible(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	habit, err := env.habits.CreateHabit(ctx, "Someday", []int{})
	if err != nil {
		t.Fatalf("CreateHabit error: %v", err)
	}
	if got := habit.WeekDayValues(); len(got) != 0 {
		t.Errorf("expected no weekdays, got %v", got)
	}

	for d := 1; d <= 7; d++ {
		view, err := env.days.GetDayView(ctx, date(2024, 1, d))
		if err != nil {
			t.Fatalf("GetDayView error: %v", err)
		}
		if containsHabit(view.PossibleHabits, habit.ID) {
			t.Errorf("habit without weekdays listed on 2024-01-%02d", d)
		}
	}

	items, err := env.summary.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty summary, got %+v", items)
	}
}

func TestRunScenario(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	run, err := env.habits.CreateHabit(ctx, "Run", []int{1, 3, 5})
	if err != nil {
		t.Fatalf("CreateHabit error: %v", err)
	}

	view, err := env.days.GetDayView(ctx, date(2024, 1, 1))
	if err != nil {
		t.Fatalf("GetDayView error: %v", err)
	}
	if !containsHabit(view.PossibleHabits, run.ID) {
		t.Error("expected Run to be possible on Monday 2024-01-01")
	}
	if view.CompletedHabitIDs == nil || len(view.CompletedHabitIDs) != 0 {
		t.Errorf("expected empty non-nil completions, got %#v", view.CompletedHabitIDs)
	}

	result, err := env.toggles.Toggle(ctx, date(2024, 1, 1), run.ID)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if !result.Completed {
		t.Error("first toggle should complete the habit")
	}

	view, _ = env.days.GetDayView(ctx, date(2024, 1, 1))
	if len(view.CompletedHabitIDs) != 1 || view.CompletedHabitIDs[0] != run.ID {
		t.Errorf("expected completions [%s], got %v", run.ID, view.CompletedHabitIDs)
	}

	result, err = env.toggles.Toggle(ctx, date(2024, 1, 1), run.ID)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if result.Completed {
		t.Error("second toggle should clear the habit")
	}

	view, _ = env.days.GetDayView(ctx, date(2024, 1, 1))
	if len(view.CompletedHabitIDs) != 0 {
		t.Errorf("expected no completions after second toggle, got %v", view.CompletedHabitIDs)
	}

	tuesday, err := env.days.GetDayView(ctx, date(2024, 1, 2))
	if err != nil {
		t.Fatalf("GetDayView error: %v", err)
	}
	if containsHabit(tuesday.PossibleHabits, run.ID) {
		t.Error("Run should not be possible on Tuesday")
	}
}

func TestDayViewExcludesHabitCreatedLater(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	env.setNow(2024, 2, 1)
	habit, _ := env.habits.CreateHabit(ctx, "Stretch", []int{1})

	view, err := env.days.GetDayView(ctx, date(2024, 1, 15)) // Monday
	if err != nil {
		t.Fatalf("GetDayView error: %v", err)
	}
	if containsHabit(view.PossibleHabits, habit.ID) {
		t.Error("habit created after the date must not be possible")
	}

	view, _ = env.days.GetDayView(ctx, date(2024, 2, 5)) // Monday after creation
	if !containsHabit(view.PossibleHabits, habit.ID) {
		t.Error("habit should be possible after its creation")
	}
}

func TestDayViewNormalizesTimestamp(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	run, _ := env.habits.CreateHabit(ctx, "Run", []int{1})
	env.toggles.Toggle(ctx, time.Date(2024, 1, 1, 22, 15, 0, 0, time.UTC), run.ID)

	view, err := env.days.GetDayView(ctx, time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetDayView error: %v", err)
	}
	if len(view.CompletedHabitIDs) != 1 {
		t.Errorf("expected completion recorded on the canonical day, got %v", view.CompletedHabitIDs)
	}
}

func TestToggleUnknownHabit(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.toggles.Toggle(ctx, date(2024, 1, 1), model.GenerateUUID())
	if !util.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	d, err := env.store.Days.FindByDate(ctx, date(2024, 1, 1))
	if err != nil {
		t.Fatalf("FindByDate error: %v", err)
	}
	if d != nil {
		t.Error("toggling an unknown habit must not create a day")
	}
}

func TestConcurrentTogglesKeepUniqueness(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	run, _ := env.habits.CreateHabit(ctx, "Run", []int{1})

	const workers = 7
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.toggles.Toggle(ctx, date(2024, 1, 1), run.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent toggle failed: %v", err)
	}

	var days int64
	env.store.DB.Model(&model.Day{}).Count(&days)
	if days != 1 {
		t.Errorf("expected one day row, got %d", days)
	}

	d, _ := env.store.Days.FindByDate(ctx, date(2024, 1, 1))
	var count int64
	env.store.DB.Model(&model.DayHabit{}).Where("day_id = ? AND habit_id = ?", d.ID, run.ID).Count(&count)
	// 奇数次切换后为已完成
	if count != 1 {
		t.Errorf("expected exactly one completion row after %d toggles, got %d", workers, count)
	}
}

func TestSummaryMatchesDayView(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	run, _ := env.habits.CreateHabit(ctx, "Run", []int{1, 3, 5})
	read, _ := env.habits.CreateHabit(ctx, "Read", []int{0, 1, 2, 3, 4, 5, 6})
	env.setNow(2024, 1, 3)
	late, _ := env.habits.CreateHabit(ctx, "Late", []int{1, 3})

	env.toggles.Toggle(ctx, date(2024, 1, 1), run.ID)
	env.toggles.Toggle(ctx, date(2024, 1, 1), read.ID)
	env.toggles.Toggle(ctx, date(2024, 1, 2), read.ID)
	env.toggles.Toggle(ctx, date(2024, 1, 3), late.ID)
	// 完成后又取消，Day 仍然保留
	env.toggles.Toggle(ctx, date(2024, 1, 8), run.ID)
	env.toggles.Toggle(ctx, date(2024, 1, 8), run.ID)

	items, err := env.summary.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	want := []SummaryItem{
		{Date: date(2024, 1, 1), Completed: 2, Possible: 2},
		{Date: date(2024, 1, 2), Completed: 1, Possible: 1},
		{Date: date(2024, 1, 3), Completed: 1, Possible: 3},
		{Date: date(2024, 1, 8), Completed: 0, Possible: 3},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d summary items, got %d: %+v", len(want), len(items), items)
	}
	for i, w := range want {
		got := items[i]
		if !got.Date.Equal(w.Date) || got.Completed != w.Completed || got.Possible != w.Possible {
			t.Errorf("item %d = %+v, want %+v", i, got, w)
		}

		view, err := env.days.GetDayView(ctx, got.Date)
		if err != nil {
			t.Fatalf("GetDayView error: %v", err)
		}
		if len(view.PossibleHabits) != got.Possible {
			t.Errorf("%s: summary possible %d != day view possible %d",
				got.Date.Format(util.DateFormat), got.Possible, len(view.PossibleHabits))
		}
		if len(view.CompletedHabitIDs) != got.Completed {
			t.Errorf("%s: summary completed %d != day view completed %d",
				got.Date.Format(util.DateFormat), got.Completed, len(view.CompletedHabitIDs))
		}
	}
}

func TestSummaryOnlyTouchedDays(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	env.habits.CreateHabit(ctx, "Run", []int{1})
	if _, err := env.days.GetDayView(ctx, date(2024, 1, 1)); err != nil {
		t.Fatalf("GetDayView error: %v", err)
	}

	items, err := env.summary.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("reads must not create days, got %+v", items)
	}
}

func TestWeekdayIndexPossible(t *testing.T) {
	habits := []model.Habit{
		{CreatedAt: date(2024, 1, 10), WeekDays: model.NewHabitWeekDays([]int{1, 3})},
		{CreatedAt: date(2024, 1, 1), WeekDays: model.NewHabitWeekDays([]int{1})},
		{CreatedAt: date(2024, 1, 20), WeekDays: model.NewHabitWeekDays([]int{1})},
	}
	idx := buildWeekdayIndex(habits)

	tests := []struct {
		day     time.Time
		weekDay int
		want    int
	}{
		{date(2023, 12, 25), 1, 0},
		{date(2024, 1, 1), 1, 1},
		{date(2024, 1, 15), 1, 2},
		{date(2024, 1, 22), 1, 3},
		{date(2024, 1, 10), 3, 1},
		{date(2024, 1, 9), 2, 0},
		{date(2024, 1, 9), 9, 0},
	}
	for _, tt := range tests {
		got := idx.possible(tt.day, tt.weekDay)
		if got != tt.want {
			t.Errorf("possible(%s, %d) = %d, want %d", tt.day.Format(util.DateFormat), tt.weekDay, got, tt.want)
		}

		brute := 0
		for i := range habits {
			if habits[i].PossibleOn(tt.day, tt.weekDay) {
				brute++
			}
		}
		if got != brute {
			t.Errorf("index disagrees with PossibleOn for %s/%d: %d vs %d", tt.day.Format(util.DateFormat), tt.weekDay, got, brute)
		}
	}
}

// memoryCache 记录调用次数的内存缓存
type memoryCache struct {
	mu          sync.Mutex
	items       []SummaryItem
	ok          bool
	gets        int
	sets        int
	invalidates int
	failGet     bool
}

func (c *memoryCache) Get(ctx context.Context) ([]SummaryItem, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, false, errors.New("cache down")
	}
	return c.items, c.ok, nil
}

func (c *memoryCache) Set(ctx context.Context, items []SummaryItem, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.items, c.ok = items, true
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidates++
	c.items, c.ok = nil, false
	return nil
}

func TestSummaryCacheReadThroughAndInvalidation(t *testing.T) {
	cache := &memoryCache{}
	env := setupTestEnv(t, cache)
	ctx := context.Background()

	run, _ := env.habits.CreateHabit(ctx, "Run", []int{1})
	env.toggles.Toggle(ctx, date(2024, 1, 1), run.ID)

	first, err := env.summary.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected summary to be cached, sets=%d", cache.sets)
	}

	second, _ := env.summary.Summarize(ctx)
	if cache.sets != 1 {
		t.Errorf("expected cache hit without recompute, sets=%d", cache.sets)
	}
	if len(second) != len(first) {
		t.Errorf("cached summary differs: %+v vs %+v", second, first)
	}

	env.toggles.Toggle(ctx, date(2024, 1, 1), run.ID)
	if cache.ok {
		t.Error("toggle should invalidate the cached summary")
	}

	third, _ := env.summary.Summarize(ctx)
	if len(third) != 1 || third[0].Completed != 0 {
		t.Errorf("expected recomputed summary with 0 completed, got %+v", third)
	}
}

func TestSummaryCacheFailureFallsBack(t *testing.T) {
	cache := &memoryCache{failGet: true}
	env := setupTestEnv(t, cache)
	ctx := context.Background()

	run, _ := env.habits.CreateHabit(ctx, "Run", []int{1})
	env.toggles.Toggle(ctx, date(2024, 1, 1), run.ID)

	items, err := env.summary.Summarize(ctx)
	if err != nil {
		t.Fatalf("cache failure must not fail the summary: %v", err)
	}
	if len(items) != 1 || items[0].Completed != 1 {
		t.Errorf("unexpected summary %+v", items)
	}
}
