package service_test

import (
	"context"

	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/repository"
	"github.com/muss3ab/tsh/internal/service"

	"github.com/google/uuid"
)

// Func-field mocks for every repository the services depend on. Unset funcs
// return zero values.

type MockOrderRepo struct {
	CreateFunc        func(ctx context.Context, o *models.Order) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetCartByUserFunc func(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	ListFunc          func(ctx context.Context, f repository.OrderListFilter) ([]models.Order, int64, error)
	UpdateTotalFunc   func(ctx context.Context, id uuid.UUID, totalCents int64) error
	MarkPlacedFunc    func(ctx context.Context, id uuid.UUID, status models.OrderStatus, address, phone string) error
	WithTxFunc        func(ctx context.Context, fn func(orders repository.OrderRepo, items repository.OrderItemRepo, products repository.ProductRepo) error) error
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetCartByUser(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	if m.GetCartByUserFunc != nil {
		return m.GetCartByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) UpdateTotal(ctx context.Context, id uuid.UUID, totalCents int64) error {
	if m.UpdateTotalFunc != nil {
		return m.UpdateTotalFunc(ctx, id, totalCents)
	}
	return nil
}

func (m *MockOrderRepo) MarkPlaced(ctx context.Context, id uuid.UUID, status models.OrderStatus, address, phone string) error {
	if m.MarkPlacedFunc != nil {
		return m.MarkPlacedFunc(ctx, id, status, address, phone)
	}
	return nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(orders repository.OrderRepo, items repository.OrderItemRepo, products repository.ProductRepo) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(m, &MockOrderItemRepo{}, &MockProductRepo{})
}

type MockOrderItemRepo struct {
	CreateFunc               func(ctx context.Context, item *models.OrderItem) error
	GetByIDFunc              func(ctx context.Context, id uuid.UUID) (*models.OrderItem, *models.Order, error)
	GetByOrderAndProductFunc func(ctx context.Context, orderID, productID uuid.UUID) (*models.OrderItem, error)
	UpdateQuantityFunc       func(ctx context.Context, id uuid.UUID, quantity int32) error
	DeleteFunc               func(ctx context.Context, id uuid.UUID) (bool, error)
	SumByOrderFunc           func(ctx context.Context, orderID uuid.UUID) (int64, error)
}

func (m *MockOrderItemRepo) Create(ctx context.Context, item *models.OrderItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *MockOrderItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, *models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil, nil
}

func (m *MockOrderItemRepo) GetByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (*models.OrderItem, error) {
	if m.GetByOrderAndProductFunc != nil {
		return m.GetByOrderAndProductFunc(ctx, orderID, productID)
	}
	return nil, nil
}

func (m *MockOrderItemRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int32) error {
	if m.UpdateQuantityFunc != nil {
		return m.UpdateQuantityFunc(ctx, id, quantity)
	}
	return nil
}

func (m *MockOrderItemRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockOrderItemRepo) SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	if m.SumByOrderFunc != nil {
		return m.SumByOrderFunc(ctx, orderID)
	}
	return 0, nil
}

type MockProductRepo struct {
	CreateFunc             func(ctx context.Context, p *models.Product) error
	UpdateFieldsFunc       func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListFunc               func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) (bool, error)
	HasByCategoryFunc      func(ctx context.Context, categoryID uuid.UUID) (bool, error)
	DecrementInventoryFunc func(ctx context.Context, id uuid.UUID, qty int32) (bool, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) HasByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	if m.HasByCategoryFunc != nil {
		return m.HasByCategoryFunc(ctx, categoryID)
	}
	return false, nil
}

func (m *MockProductRepo) DecrementInventory(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	if m.DecrementInventoryFunc != nil {
		return m.DecrementInventoryFunc(ctx, id, qty)
	}
	return true, nil
}

type MockCategoryRepo struct {
	CreateFunc       func(ctx context.Context, c *models.Category) error
	UpdateFieldsFunc func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetBySlugFunc    func(ctx context.Context, slug string) (*models.Category, error)
	ListAllFunc      func(ctx context.Context) ([]models.Category, error)
	ListRootsFunc    func(ctx context.Context) ([]models.Category, error)
	ListFunc         func(ctx context.Context, limit, offset int) ([]models.Category, int64, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) (bool, error)
	HasChildrenFunc  func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCategoryRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListAll(ctx context.Context) ([]models.Category, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListRoots(ctx context.Context) ([]models.Category, error) {
	if m.ListRootsFunc != nil {
		return m.ListRootsFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepo) List(ctx context.Context, limit, offset int) ([]models.Category, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockCategoryRepo) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.HasChildrenFunc != nil {
		return m.HasChildrenFunc(ctx, id)
	}
	return false, nil
}

type MockWishlistRepo struct {
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error)
	ExistsFunc     func(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	AddFunc        func(ctx context.Context, userID, productID uuid.UUID) error
	RemoveFunc     func(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

func (m *MockWishlistRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockWishlistRepo) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, userID, productID)
	}
	return false, nil
}

func (m *MockWishlistRepo) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, userID, productID)
	}
	return nil
}

func (m *MockWishlistRepo) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, userID, productID)
	}
	return false, nil
}

type MockUserRepo struct {
	CreateFunc        func(ctx context.Context, u *models.User) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func customerCtx(userID uuid.UUID) context.Context {
	ctx := service.WithUserID(context.Background(), userID)
	return service.WithRole(ctx, models.RoleCustomer)
}

func adminCtx(userID uuid.UUID) context.Context {
	ctx := service.WithUserID(context.Background(), userID)
	return service.WithRole(ctx, models.RoleAdmin)
}
