package dto

import (
	"time"

	"github.com/muss3ab/tsh/internal/models"
)

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type CategoryResponse struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	ParentID *string            `json:"parent_id,omitempty"`
	Children []CategoryResponse `json:"children,omitempty"`
}

type ProductResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          string            `json:"price"`
	ImageURL       string            `json:"image_url"`
	InventoryCount int32             `json:"inventory_count"`
	Category       *CategoryResponse `json:"category,omitempty"`
}

// ProductSummary is the compact product shape embedded in cart/order items.
type ProductSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
}

type OrderItemResponse struct {
	ID       string          `json:"id"`
	Product  *ProductSummary `json:"product,omitempty"`
	Quantity int32           `json:"quantity"`
	Price    string          `json:"price"`
	Subtotal string          `json:"subtotal"`
}

type CartResponse struct {
	ID         string              `json:"id"`
	Status     string              `json:"status"`
	TotalPrice string              `json:"total_price"`
	Items      []OrderItemResponse `json:"items"`
	ItemCount  int32               `json:"item_count"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	Status          string              `json:"status"`
	TotalPrice      string              `json:"total_price"`
	ShippingAddress string              `json:"shipping_address"`
	ShippingPhone   string              `json:"shipping_phone"`
	Items           []OrderItemResponse `json:"items"`
	ItemCount       int32               `json:"item_count"`
	CreatedAt       time.Time           `json:"created_at"`
}

type ListMeta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type ProductListResponse struct {
	Data []ProductResponse `json:"data"`
	Meta ListMeta          `json:"meta"`
}

type CategoryListResponse struct {
	Data []CategoryResponse `json:"data"`
	Meta ListMeta           `json:"meta"`
}

type OrderListResponse struct {
	Data []OrderResponse `json:"data"`
	Meta ListMeta        `json:"meta"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

func ToCategoryResponse(c *models.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:   c.ID.String(),
		Name: c.Name,
		Slug: c.Slug,
	}
	if c.ParentID != nil {
		pid := c.ParentID.String()
		resp.ParentID = &pid
	}
	for i := range c.Children {
		resp.Children = append(resp.Children, ToCategoryResponse(&c.Children[i]))
	}
	return resp
}

func ToProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		Price:          FormatCents(p.PriceCents),
		ImageURL:       p.ImageURL,
		InventoryCount: p.InventoryCount,
	}
	if p.Category != nil {
		cat := ToCategoryResponse(p.Category)
		resp.Category = &cat
	}
	return resp
}

func toOrderItemResponse(item *models.OrderItem) OrderItemResponse {
	resp := OrderItemResponse{
		ID:       item.ID.String(),
		Quantity: item.Quantity,
		Price:    FormatCents(item.PriceCents),
		Subtotal: FormatCents(int64(item.Quantity) * item.PriceCents),
	}
	if item.Product != nil {
		resp.Product = &ProductSummary{
			ID:       item.Product.ID.String(),
			Name:     item.Product.Name,
			Price:    FormatCents(item.Product.PriceCents),
			ImageURL: item.Product.ImageURL,
		}
	}
	return resp
}

func orderItems(o *models.Order) ([]OrderItemResponse, int32) {
	items := make([]OrderItemResponse, 0, len(o.Items))
	var count int32
	for i := range o.Items {
		items = append(items, toOrderItemResponse(&o.Items[i]))
		count += o.Items[i].Quantity
	}
	return items, count
}

func ToCartResponse(o *models.Order) CartResponse {
	items, count := orderItems(o)
	return CartResponse{
		ID:         o.ID.String(),
		Status:     string(o.Status),
		TotalPrice: FormatCents(o.TotalPriceCents),
		Items:      items,
		ItemCount:  count,
	}
}

func ToOrderResponse(o *models.Order) OrderResponse {
	items, count := orderItems(o)
	return OrderResponse{
		ID:              o.ID.String(),
		Status:          string(o.Status),
		TotalPrice:      FormatCents(o.TotalPriceCents),
		ShippingAddress: o.ShippingAddress,
		ShippingPhone:   o.ShippingPhone,
		Items:           items,
		ItemCount:       count,
		CreatedAt:       o.CreatedAt,
	}
}
