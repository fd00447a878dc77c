package store

import (
	"context"

	"gorm.io/gorm"

	"pincheck/internal/db"
	"pincheck/internal/models"
)

// DBStore persists records in postgres, one table per record kind. It is
// the "remote collection" counterpart of the file backend.
type DBStore struct {
	db *gorm.DB
}

func OpenDBStore(dsn string) (*DBStore, error) {
	conn, err := db.InitDB(dsn)
	if err != nil {
		return nil, err
	}
	return &DBStore{db: conn}, nil
}

func (s *DBStore) AppendDetails(ctx context.Context, details []models.PincodeDetail) error {
	for i := range details {
		if err := gorm.G[models.PincodeDetail](s.db).Create(ctx, &details[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *DBStore) AppendCheck(ctx context.Context, check models.PincodeCheck) error {
	return gorm.G[models.PincodeCheck](s.db).Create(ctx, &check)
}

func (s *DBStore) Details(ctx context.Context) ([]models.PincodeDetail, error) {
	return gorm.G[models.PincodeDetail](s.db).Order("id ASC").Find(ctx)
}

func (s *DBStore) Checks(ctx context.Context) ([]models.PincodeCheck, error) {
	return gorm.G[models.PincodeCheck](s.db).Order("checked_at ASC, id ASC").Find(ctx)
}

func (s *DBStore) HasSuccess(ctx context.Context, pincode string) (bool, error) {
	count, err := gorm.G[models.PincodeCheck](s.db).
		Where("pincode = ? AND status = ?", pincode, models.StatusFound).
		Count(ctx, "id")
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *DBStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
