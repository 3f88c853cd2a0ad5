package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment types
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
)

// Sale statuses
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusVoided  = "voided"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Base model for soft-deletable entities
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// User represents a system user
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Name         string `json:"nombre"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"default:'user'" json:"rol"` // admin, user
}

// Customer represents a buyer, usually one buying on credit
type Customer struct {
	BaseModel
	Name    string `gorm:"not null" json:"nombre"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
	TaxID   string `json:"nit"` // fiscal identifier
	Sales   []Sale `gorm:"foreignKey:CustomerID" json:"ventas,omitempty"`
}

// Product represents a sellable item
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Barcode       string    `gorm:"uniqueIndex;not null" json:"codigo_barras"`
	Name          string    `gorm:"not null" json:"nombre"`
	Brand         string    `json:"marca"`
	PurchasePrice float64   `gorm:"default:0" json:"precio_compra"`
	SalePrice     float64   `gorm:"default:0" json:"precio_venta"`
	Stock         int       `gorm:"default:0" json:"stock"`
}

// Sale represents a cash or credit sale
type Sale struct {
	BaseModel
	CustomerID   *uuid.UUID `gorm:"type:uuid;index" json:"cliente_id"`
	Customer     *Customer  `gorm:"foreignKey:CustomerID" json:"cliente,omitempty"`
	UserID       *uuid.UUID `gorm:"type:uuid" json:"usuario_id"`
	User         *User      `gorm:"foreignKey:UserID" json:"-"`
	Subtotal     float64    `gorm:"not null" json:"subtotal"`
	Tax          float64    `gorm:"default:0" json:"impuesto"`
	Total        float64    `gorm:"not null" json:"total"`
	PaymentType  string     `gorm:"not null" json:"tipo_pago"`        // cash, credit
	Status       string     `gorm:"default:'pending'" json:"estado"`  // paid, pending, voided
	Balance      float64    `gorm:"default:0" json:"saldo_pendiente"` // outstanding balance for credit
	Profit       float64    `gorm:"default:0" json:"utilidad_total"`
	SaleDate     time.Time  `gorm:"index" json:"fecha"`
	TermDays     int        `json:"plazo_dias"`    // credit term in days
	Installments int        `json:"numero_abonos"` // planned installment count
	Lines        []SaleLine `gorm:"foreignKey:SaleID" json:"detalles"`
	Payments     []Payment  `gorm:"foreignKey:SaleID" json:"abonos,omitempty"`
}

// SaleLine freezes the price and cost of one product at sale time
type SaleLine struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	SaleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"venta_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null" json:"producto_id"`
	Product   *Product       `gorm:"foreignKey:ProductID" json:"producto,omitempty"`
	Quantity  int            `gorm:"not null" json:"cantidad"`
	UnitPrice float64        `gorm:"not null" json:"precio_unitario"`
	UnitCost  float64        `gorm:"not null" json:"costo_unitario"`
	Subtotal  float64        `gorm:"not null" json:"subtotal"`
	Profit    float64        `gorm:"not null" json:"utilidad_real"`
}

// Payment is one installment ("abono") against a credit sale
type Payment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	SaleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"venta_id"`
	Amount    float64        `gorm:"not null" json:"monto"`
	UserID    *uuid.UUID     `gorm:"type:uuid" json:"usuario_id"`
	PaidAt    time.Time      `json:"fecha"`
}

// Expense is an operating expense, consumed only by reports
type Expense struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	Description string     `gorm:"not null" json:"descripcion"`
	Amount      float64    `gorm:"not null" json:"monto"`
	Category    string     `json:"categoria"`
	UserID      *uuid.UUID `gorm:"type:uuid" json:"usuario_id"`
	Date        time.Time  `gorm:"index" json:"fecha"`
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Customer{},
		&Product{},
		&Sale{},
		&SaleLine{},
		&Payment{},
		&Expense{},
	)
}
