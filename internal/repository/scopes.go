package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// notDeleted hides soft deleted rows of table.
func notDeleted(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".is_deleted = ?", false)
	}
}

func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	}
}

func like(term string) string {
	return "%" + term + "%"
}

// softDelete marks the live row id of model as deleted.
func softDelete(db *gorm.DB, model interface{}, id int, by *uuid.UUID) (int64, error) {
	return softDeleteWhere(db, model, "id = ?", id, by)
}

// softDeleteWhere marks every live row of model matching cond as deleted.
func softDeleteWhere(db *gorm.DB, model interface{}, cond string, arg interface{}, by *uuid.UUID) (int64, error) {
	now := time.Now()
	result := db.Model(model).
		Where(cond, arg).
		Where("is_deleted = ?", false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
			"deleted_by": by,
			"updated_by": by,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// restore un-hides the soft deleted row id of model.
func restore(db *gorm.DB, model interface{}, id int, by *uuid.UUID) (int64, error) {
	result := db.Model(model).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]interface{}{
			"is_deleted": false,
			"deleted_at": nil,
			"deleted_by": nil,
			"updated_by": by,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// exists reports whether a live row of model matches column = value, ignoring excludeID.
func exists(db *gorm.DB, model interface{}, column, value string, excludeID int) (bool, error) {
	var count int64
	query := db.Model(model).Where(column+" = ? AND is_deleted = ?", value, false)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// first loads one row into dest, returning (false, nil) when none matches.
func first(query *gorm.DB, dest interface{}) (bool, error) {
	err := query.First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
