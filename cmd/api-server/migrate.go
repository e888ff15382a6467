package main

import (
	"Brandi/config"
	"Brandi/models"
	"Brandi/pkg/database"
	"Brandi/pkg/log"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// migrate 建表并写入订单状态字典，可重复执行
func migrate(cfg *config.Config) error {
	db := database.NewDB(cfg)
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}

	statuses := make([]models.OrderStatus, len(models.DefaultOrderStatuses))
	copy(statuses, models.DefaultOrderStatuses)
	err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&statuses).Error
	if err != nil {
		return err
	}
	log.L.Info("migrate done", zap.Int("tables", len(models.All())))
	return nil
}
