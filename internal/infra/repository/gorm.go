package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueViolation recognises duplicate keys whether or not gorm's
// TranslateError is enabled.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// first loads one row, returning (nil, nil) when nothing matches.
func first[T any](ctx context.Context, db *gorm.DB, query any, args ...any) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where(query, args...).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// updateColumns applies fields to the row with id and reports whether it
// exists. An empty field set only checks existence.
func updateColumns[T any](ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		var count int64
		err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error
		return count > 0, err
	}

	res := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
