package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"gorm.io/gorm"
)

// Store is the slice of persistence the ledger needs. Callers pass their
// transaction-scoped store so stock changes commit or roll back with the
// sale that caused them.
type Store interface {
	ProductForUpdate(id uuid.UUID) (*database.Product, error)
	SaveProduct(p *database.Product) error
}

// Reserve locks the product and checks availability without mutating stock.
// It returns the product so callers can read its current prices.
func Reserve(s Store, productID uuid.UUID, qty int) (*database.Product, error) {
	product, err := s.ProductForUpdate(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, apperr.CodeProductNotFound,
				fmt.Sprintf("Producto %s no encontrado", productID))
		}
		return nil, apperr.Wrap(err)
	}
	if product.Stock < qty {
		return nil, apperr.New(apperr.InsufficientStock, apperr.CodeInsufficientStock,
			fmt.Sprintf("Stock insuficiente para %s", product.Name))
	}
	return product, nil
}

// CommitDecrement applies the stock decrement for a reserved quantity.
func CommitDecrement(s Store, productID uuid.UUID, qty int) error {
	product, err := Reserve(s, productID, qty)
	if err != nil {
		return err
	}
	product.Stock -= qty
	if err := s.SaveProduct(product); err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

// Adjust applies a signed manual stock correction. Callers run it inside a
// transaction so the availability check and the write share one lock scope.
func Adjust(s Store, productID uuid.UUID, delta int) error {
	if delta >= 0 {
		return CommitIncrement(s, productID, delta)
	}
	return CommitDecrement(s, productID, -delta)
}

// CommitIncrement restores stock, used when a sale is voided.
func CommitIncrement(s Store, productID uuid.UUID, qty int) error {
	product, err := s.ProductForUpdate(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, apperr.CodeProductNotFound,
				fmt.Sprintf("Producto %s no encontrado", productID))
		}
		return apperr.Wrap(err)
	}
	product.Stock += qty
	if err := s.SaveProduct(product); err != nil {
		return apperr.Wrap(err)
	}
	return nil
}
