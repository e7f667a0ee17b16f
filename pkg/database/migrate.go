package database

import (
	"fmt"

	"gorm.io/gorm"

	"inventory-tracker/internal/model"
)

// Models lists every table in dependency order.
var Models = []interface{}{
	&model.Privilege{},
	&model.Role{},
	&model.User{},
	&model.Category{},
	&model.Supplier{},
	&model.Product{},
	&model.IssuanceRecord{},
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
