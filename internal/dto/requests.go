package dto

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int32  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int32 `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required,max=500"`
	ShippingPhone   string `json:"shipping_phone" binding:"required,max=20"`
}

type AddWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

type CreateProductRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Description    string `json:"description"`
	Price          string `json:"price" binding:"required"` // decimal string, 2 dp
	ImageURL       string `json:"image_url" binding:"omitempty,url"`
	InventoryCount int32  `json:"inventory_count" binding:"min=0"`
	CategoryID     string `json:"category_id" binding:"required,uuid"`
}

type UpdateProductRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=255"`
	Description    *string `json:"description"`
	Price          *string `json:"price"`
	ImageURL       *string `json:"image_url" binding:"omitempty,url"`
	InventoryCount *int32  `json:"inventory_count" binding:"omitempty,min=0"`
	CategoryID     *string `json:"category_id" binding:"omitempty,uuid"`
}

type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Slug     string  `json:"slug" binding:"required,max=255"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
	Slug *string `json:"slug" binding:"omitempty,max=255"`
	// ParentID accepts a uuid to reparent or null to make the category a root;
	// omit the key to leave the parent unchanged.
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid"`
	ClearParent bool    `json:"clear_parent"`
}
