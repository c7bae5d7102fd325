package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "ROLE_CUSTOMER"
	RoleAdmin    Role = "ROLE_ADMIN"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"type:text;not null"`
	Email     string    `gorm:"not null"` // uniqueness via functional index on lower(email)
	Password  string    `gorm:"not null"` // bcrypt hash
	Role      Role      `gorm:"type:text;not null;default:'ROLE_CUSTOMER';index"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }

type Category struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name     string     `gorm:"type:text;not null"`
	Slug     string     `gorm:"type:text;not null;uniqueIndex:ux_categories_slug"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Children []Category `gorm:"foreignKey:ParentID"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"type:text;not null"`
	Description    string    `gorm:"type:text"`
	PriceCents     int64     `gorm:"not null;default:0"`
	ImageURL       string    `gorm:"type:text"`
	InventoryCount int32     `gorm:"not null;default:0"` // CHECK >= 0 added in migration
	CategoryID     uuid.UUID `gorm:"type:uuid;not null;index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}

func (Product) TableName() string { return "products" }

// OrderStatus is a plain string column. The cart is an order with status
// "cart"; checkout moves it to "pending". Completed/cancelled are part of the
// allowed set for forward compatibility but nothing transitions into them yet.
type OrderStatus string

const (
	OrderStatusCart      OrderStatus = "cart"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status          OrderStatus `gorm:"type:text;not null;default:'cart';index"`
	TotalPriceCents int64       `gorm:"not null;default:0"`
	ShippingAddress string      `gorm:"type:text;not null;default:''"`
	ShippingPhone   string      `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_order_items_order_product"`
	Quantity   int32     `gorm:"type:int;not null"` // CHECK > 0 added in migration
	PriceCents int64     `gorm:"not null"`          // snapshot of product price at first add

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (OrderItem) TableName() string { return "order_items" }

type Wishlist struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_wishlists_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_wishlists_user_product"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (Wishlist) TableName() string { return "wishlists" }
