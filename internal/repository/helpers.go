package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// softDelete stamps deleted_by and soft-deletes the row. A missing row
// yields gorm.ErrRecordNotFound.
func softDelete(db *gorm.DB, value interface{}, id uuid.UUID, deletedBy string) error {
	if err := db.Model(value).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	res := db.Delete(value, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

