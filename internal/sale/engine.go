package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/walner-prog/mitienda-backend/internal/inventory"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"github.com/walner-prog/mitienda-backend/pkg/money"
	"gorm.io/gorm"
)

// Engine owns the sale lifecycle: creation (cash or credit), voiding with
// stock restoration, and installment payments against the outstanding
// balance. Every operation runs inside one store transaction.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

type LineInput struct {
	ProductID uuid.UUID
	Quantity  int
	// UnitPrice overrides the product's current sale price when set.
	UnitPrice *float64
}

type CreateSaleInput struct {
	CustomerID     *uuid.UUID
	UserID         *uuid.UUID
	PaymentType    string // cash, credit; defaults to cash
	Items          []LineInput
	Tax            float64
	InitialPayment float64
	TermDays       int
	Installments   int
}

// CreateSale validates the order, freezes line prices and costs, decrements
// stock and persists the sale with its lines, all atomically. For credit
// sales an initial payment may be applied in the same transaction.
func (e *Engine) CreateSale(in CreateSaleInput) (*database.Sale, error) {
	paymentType := in.PaymentType
	if paymentType == "" {
		paymentType = database.PaymentCash
	}
	if paymentType != database.PaymentCash && paymentType != database.PaymentCredit {
		return nil, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "Tipo de pago inválido")
	}

	if len(in.Items) == 0 {
		return nil, apperr.New(apperr.Validation, apperr.CodeEmptyOrder, "No hay items en la venta")
	}

	if paymentType == database.PaymentCredit {
		if in.CustomerID == nil {
			return nil, apperr.New(apperr.Validation, apperr.CodeMissingCustomer,
				"Se requiere un cliente para ventas a crédito")
		}
		if in.TermDays <= 0 {
			return nil, apperr.New(apperr.Validation, apperr.CodeInvalidTerm,
				"Se debe especificar el plazo de crédito en días")
		}
		if in.Installments <= 0 {
			return nil, apperr.New(apperr.Validation, apperr.CodeInvalidInstallmentPlan,
				"Se debe especificar el número de abonos")
		}
	}

	var sale *database.Sale
	err := e.store.Transact(func(tx Store) error {
		var subtotal, profit float64
		lines := make([]database.SaleLine, 0, len(in.Items))

		for _, item := range in.Items {
			if item.Quantity <= 0 {
				return apperr.New(apperr.Validation, apperr.CodeInvalidInput, "Cantidad inválida")
			}

			product, err := inventory.Reserve(tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}

			unitPrice := product.SalePrice
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}

			lineSubtotal := money.Round2(unitPrice * float64(item.Quantity))
			lineCost := money.Round2(product.PurchasePrice * float64(item.Quantity))
			lineProfit := lineSubtotal - lineCost

			subtotal += lineSubtotal
			profit += lineProfit

			lines = append(lines, database.SaleLine{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				UnitCost:  product.PurchasePrice,
				Subtotal:  lineSubtotal,
				Profit:    lineProfit,
			})

			if err := inventory.CommitDecrement(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		total := money.Round2(subtotal + in.Tax)

		status := database.StatusPending
		balance := total
		if paymentType == database.PaymentCash {
			status = database.StatusPaid
			balance = 0
		}

		sale = &database.Sale{
			CustomerID:   in.CustomerID,
			UserID:       in.UserID,
			Subtotal:     subtotal,
			Tax:          in.Tax,
			Total:        total,
			PaymentType:  paymentType,
			Status:       status,
			Balance:      balance,
			Profit:       profit,
			SaleDate:     time.Now(),
			TermDays:     in.TermDays,
			Installments: in.Installments,
			Lines:        lines,
		}
		if err := tx.CreateSale(sale); err != nil {
			return apperr.Wrap(err)
		}

		if paymentType == database.PaymentCredit && in.InitialPayment > 0 {
			if in.InitialPayment > sale.Balance {
				return apperr.New(apperr.Conflict, apperr.CodePaymentExceedsBalance,
					"El abono inicial excede el saldo")
			}
			payment := &database.Payment{
				SaleID: sale.ID,
				Amount: in.InitialPayment,
				UserID: in.UserID,
				PaidAt: time.Now(),
			}
			if err := tx.CreatePayment(payment); err != nil {
				return apperr.Wrap(err)
			}
			sale.Balance = money.Round2(sale.Balance - in.InitialPayment)
			if sale.Balance == 0 {
				sale.Status = database.StatusPaid
			}
			if err := tx.SaveSale(sale); err != nil {
				return apperr.Wrap(err)
			}
			sale.Payments = []database.Payment{*payment}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// VoidSale restores stock for every active line, soft-deletes the sale's
// payments and lines, and leaves the sale row voided with a zero balance.
// Voiding an already-voided sale fails without touching stock.
func (e *Engine) VoidSale(id uuid.UUID) (*database.Sale, error) {
	var sale *database.Sale
	err := e.store.Transact(func(tx Store) error {
		var err error
		sale, err = tx.SaleForUpdate(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, apperr.CodeNotFound, "Venta no encontrada")
			}
			return apperr.Wrap(err)
		}
		if sale.Status == database.StatusVoided {
			return apperr.New(apperr.Conflict, apperr.CodeAlreadyVoided, "Venta ya está anulada")
		}

		lines, err := tx.ActiveLines(sale.ID)
		if err != nil {
			return apperr.Wrap(err)
		}
		for _, line := range lines {
			if err := inventory.CommitIncrement(tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		if err := tx.SoftDeletePayments(sale.ID); err != nil {
			return apperr.Wrap(err)
		}
		if err := tx.SoftDeleteLines(sale.ID); err != nil {
			return apperr.Wrap(err)
		}

		sale.Status = database.StatusVoided
		sale.Balance = 0
		if err := tx.SaveSale(sale); err != nil {
			return apperr.Wrap(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// RegisterPayment appends one installment against a credit sale's balance.
// The balance read and write happen under the sale's row lock so concurrent
// payments serialize.
func (e *Engine) RegisterPayment(saleID uuid.UUID, amount float64, userID *uuid.UUID) (*database.Payment, *database.Sale, error) {
	if amount <= 0 {
		return nil, nil, apperr.New(apperr.Validation, apperr.CodeInvalidAmount, "Monto inválido")
	}

	var (
		payment *database.Payment
		sale    *database.Sale
	)
	err := e.store.Transact(func(tx Store) error {
		var err error
		sale, err = tx.SaleForUpdate(saleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, apperr.CodeNotFound, "Venta no encontrada")
			}
			return apperr.Wrap(err)
		}
		if sale.Status == database.StatusVoided {
			return apperr.New(apperr.Conflict, apperr.CodeVoidedSale, "Venta anulada")
		}
		if sale.PaymentType != database.PaymentCredit {
			return apperr.New(apperr.Conflict, apperr.CodeNotCreditSale, "Venta no es a crédito")
		}

		if sale.Installments > 0 {
			count, err := tx.ActivePaymentCount(sale.ID)
			if err != nil {
				return apperr.Wrap(err)
			}
			if count >= int64(sale.Installments) {
				return apperr.New(apperr.Conflict, apperr.CodeInstallmentLimitReached,
					"Se alcanzó el número máximo de abonos")
			}
		}

		newBalance := money.Round2(sale.Balance - amount)
		if newBalance < 0 {
			return apperr.New(apperr.Conflict, apperr.CodePaymentExceedsBalance,
				"El abono excede el saldo pendiente")
		}

		payment = &database.Payment{
			SaleID: sale.ID,
			Amount: amount,
			UserID: userID,
			PaidAt: time.Now(),
		}
		if err := tx.CreatePayment(payment); err != nil {
			return apperr.Wrap(err)
		}

		sale.Balance = newBalance
		if newBalance == 0 {
			sale.Status = database.StatusPaid
		}
		if err := tx.SaveSale(sale); err != nil {
			return apperr.Wrap(err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, sale, nil
}
