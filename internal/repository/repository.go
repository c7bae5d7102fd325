package repository

import "gorm.io/gorm"

type Repository struct {
	DB         *gorm.DB
	Users      UserRepo
	Categories CategoryRepo
	Products   ProductRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
	Wishlists  WishlistRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Users:      NewUserRepo(db),
		Categories: NewCategoryRepo(db),
		Products:   NewProductRepo(db),
		Orders:     NewOrderRepo(db),
		OrderItems: NewOrderItemRepo(db),
		Wishlists:  NewWishlistRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// WithTx runs fn against a repository set bound to one transaction.
func (r *Repository) WithTx(fn func(tx *Repository) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
