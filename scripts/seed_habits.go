// 写入演示用习惯与今天的完成记录
//
// 仅用于本地开发或首次部署后查看热力图效果，重复执行会追加新的习惯。
//
// 用法: go run scripts/seed_habits.go

package main

import (
	"context"
	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/internal/service"
	"habit_tracker_backend/internal/util"
	"habit_tracker_backend/pkg/database"
	"habit_tracker_backend/pkg/logger"
	"log"

	"go.uber.org/zap"
)

var demoHabits = []struct {
	title    string
	weekDays []int
}{
	{"Beber 2L de água", []int{0, 1, 2, 3, 4, 5, 6}},
	{"Exercitar", []int{1, 3, 5}},
	{"Ler 10 páginas", []int{1, 2, 3, 4, 5}},
	{"Meditar", []int{0, 6}},
}

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	loc, err := config.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		logger.Log.Fatal("Invalid calendar timezone", zap.Error(err))
	}

	calendar := util.NewCalendar(loc)
	store := repository.NewStore(db)
	habitService := service.NewHabitService(store, calendar, nil)
	toggleService := service.NewToggleService(store, calendar, nil)

	ctx := context.Background()
	today := calendar.Today()

	for i, demo := range demoHabits {
		habit, err := habitService.CreateHabit(ctx, demo.title, demo.weekDays)
		if err != nil {
			logger.Log.Fatal("Failed to create habit", zap.String("title", demo.title), zap.Error(err))
		}

		// 习惯创建于今天，只能为今天打卡；按序号错开以便热力图有深浅
		if i%2 == 0 && habit.PossibleOn(today, calendar.WeekdayOf(today)) {
			if _, err := toggleService.Toggle(ctx, today, habit.ID); err != nil {
				logger.Log.Fatal("Failed to toggle habit", zap.String("id", habit.ID), zap.Error(err))
			}
		}
	}

	logger.Log.Info("Demo habits seeded", zap.Int("count", len(demoHabits)))
}
