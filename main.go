// @title Habit Tracker 后端 API
// @version 1.0
// @description 习惯打卡服务：按星期重复的习惯、每日完成切换与热力图汇总。

// @host localhost:3333
// @BasePath /

package main

import (
	"context"
	"flag"
	"habit_tracker_backend/internal/app"
	"habit_tracker_backend/internal/config"
	"habit_tracker_backend/pkg/logger"
	"log"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	configDir := flag.String("config", "configs", "config.yaml 所在目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		application.Close(context.Background())
		logger.Log.Info("Database migration completed, exiting")
		return
	}

	application.Run()
}
