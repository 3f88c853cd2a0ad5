package inventory

import (
	"github.com/google/uuid"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db *gorm.DB
}

// StoreFor adapts a gorm handle to the ledger's Store. The handle must be
// transaction-scoped: the FOR UPDATE lock taken by ProductForUpdate only
// outlives the statement inside an open transaction.
func StoreFor(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ProductForUpdate(id uuid.UUID) (*database.Product, error) {
	var product database.Product
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *gormStore) SaveProduct(p *database.Product) error {
	return s.db.Save(p).Error
}
