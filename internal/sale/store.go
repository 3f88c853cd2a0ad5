package sale

import (
	"github.com/google/uuid"
	"github.com/walner-prog/mitienda-backend/internal/inventory"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence surface the engine depends on. Transact yields a
// store scoped to one database transaction; everything done through that
// store commits or rolls back as a unit.
type Store interface {
	Transact(fn func(tx Store) error) error

	ProductForUpdate(id uuid.UUID) (*database.Product, error)
	SaveProduct(p *database.Product) error

	CreateSale(s *database.Sale) error
	SaleForUpdate(id uuid.UUID) (*database.Sale, error)
	SaveSale(s *database.Sale) error
	ActiveLines(saleID uuid.UUID) ([]database.SaleLine, error)
	SoftDeleteLines(saleID uuid.UUID) error

	CreatePayment(p *database.Payment) error
	ActivePaymentCount(saleID uuid.UUID) (int64, error)
	SoftDeletePayments(saleID uuid.UUID) error
}

// gormStore embeds the inventory store so product locking behaves the same
// here and in manual stock adjustments.
type gormStore struct {
	db *gorm.DB
	inventory.Store
}

// NewStore wraps a gorm handle in the engine's Store interface.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db, Store: inventory.StoreFor(db)}
}

func (s *gormStore) Transact(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx, Store: inventory.StoreFor(tx)})
	})
}

func (s *gormStore) CreateSale(sale *database.Sale) error {
	return s.db.Create(sale).Error
}

func (s *gormStore) SaleForUpdate(id uuid.UUID) (*database.Sale, error) {
	var sale database.Sale
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (s *gormStore) SaveSale(sale *database.Sale) error {
	return s.db.Omit("Lines", "Payments", "Customer", "User").Save(sale).Error
}

func (s *gormStore) ActiveLines(saleID uuid.UUID) ([]database.SaleLine, error) {
	var lines []database.SaleLine
	err := s.db.Where("sale_id = ?", saleID).Find(&lines).Error
	return lines, err
}

func (s *gormStore) SoftDeleteLines(saleID uuid.UUID) error {
	return s.db.Where("sale_id = ?", saleID).Delete(&database.SaleLine{}).Error
}

func (s *gormStore) CreatePayment(p *database.Payment) error {
	return s.db.Create(p).Error
}

func (s *gormStore) ActivePaymentCount(saleID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&database.Payment{}).Where("sale_id = ?", saleID).Count(&count).Error
	return count, err
}

func (s *gormStore) SoftDeletePayments(saleID uuid.UUID) error {
	return s.db.Where("sale_id = ?", saleID).Delete(&database.Payment{}).Error
}
