package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/muss3ab/tsh/internal/migrate"
	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/repository"
	"github.com/muss3ab/tsh/pkg/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateStoreDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, repo repository.UserRepo, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Test", Email: email, Password: "x", Role: models.RoleCustomer}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createCategory(t *testing.T, repo repository.CategoryRepo, name, slug string, parentID *uuid.UUID) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: slug, ParentID: parentID}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func createProduct(t *testing.T, repo repository.ProductRepo, name string, cents int64, inventory int32, categoryID uuid.UUID) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, PriceCents: cents, InventoryCount: inventory, CategoryID: categoryID}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func TestUserRepo_EmailIsCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	createUser(t, repos.Users, "jane@example.com")

	got, err := repos.Users.GetByEmail(ctx, "JANE@example.com")
	if err != nil || got == nil {
		t.Fatalf("GetByEmail: %v %v", got, err)
	}

	exists, err := repos.Users.ExistsByEmail(ctx, "Jane@Example.Com")
	if err != nil || !exists {
		t.Fatalf("ExistsByEmail: %v %v", exists, err)
	}

	// The functional unique index refuses a second spelling of the same email.
	dup := &models.User{Name: "Dup", Email: "JANE@EXAMPLE.COM", Password: "x", Role: models.RoleCustomer}
	if err := repos.Users.Create(ctx, dup); err == nil {
		t.Fatalf("duplicate email should be rejected")
	}
}

func TestCategoryRepo_TreeAndGuards(t *testing.T) {
	db := setupDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	root := createCategory(t, repos.Categories, "Electronics", "electronics", nil)
	child := createCategory(t, repos.Categories, "Laptops", "laptops", &root.ID)

	roots, err := repos.Categories.ListRoots(ctx)
	if err != nil {
		t.Fatalf("ListRoots: %v", err)
	}
	if len(roots) != 1 || roots[0].ID != root.ID {
		t.Fatalf("expected one root, got %+v", roots)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].ID != child.ID {
		t.Fatalf("children not preloaded: %+v", roots[0].Children)
	}

	has, err := repos.Categories.HasChildren(ctx, root.ID)
	if err != nil || !has {
		t.Fatalf("HasChildren(root): %v %v", has, err)
	}
	has, err = repos.Categories.HasChildren(ctx, child.ID)
	if err != nil || has {
		t.Fatalf("HasChildren(leaf): %v %v", has, err)
	}

	// Slug is unique.
	dup := &models.Category{Name: "Other", Slug: "electronics"}
	if err := repos.Categories.Create(ctx, dup); err == nil {
		t.Fatalf("duplicate slug should be rejected")
	}

	bySlug, err := repos.Categories.GetBySlug(ctx, "laptops")
	if err != nil || bySlug == nil || bySlug.ID != child.ID {
		t.Fatalf("GetBySlug: %v %v", bySlug, err)
	}

	ok, err := repos.Categories.Delete(ctx, child.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: %v %v", ok, err)
	}
	ok, err = repos.Categories.Delete(ctx, child.ID)
	if err != nil || ok {
		t.Fatalf("second Delete should report nothing removed: %v %v", ok, err)
	}
}

func TestProductRepo_ListFilters(t *testing.T) {
	db := setupDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	electronics := createCategory(t, repos.Categories, "Electronics", "electronics", nil)
	clothing := createCategory(t, repos.Categories, "Clothing", "clothing", nil)

	createProduct(t, repos.Products, "Cheap Phone", 19999, 5, electronics.ID)
	createProduct(t, repos.Products, "Fancy Laptop", 129900, 3, electronics.ID)
	createProduct(t, repos.Products, "Plain Shirt", 4550, 10, clothing.ID)

	// Category filter.
	list, total, err := repos.Products.List(ctx, repository.ProductListFilter{
		CategoryIDs: []uuid.UUID{electronics.ID},
		Limit:       20,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("category filter: total=%d len=%d", total, len(list))
	}

	// Price range picks out the middle product.
	min, max := int64(10000), int64(50000)
	list, total, err = repos.Products.List(ctx, repository.ProductListFilter{
		MinPriceCents: &min,
		MaxPriceCents: &max,
		Limit:         20,
	})
	if err != nil {
		t.Fatalf("List price range: %v", err)
	}
	if total != 1 || list[0].Name != "Cheap Phone" {
		t.Fatalf("price filter: total=%d %+v", total, list)
	}

	// Case-insensitive name search.
	list, total, err = repos.Products.List(ctx, repository.ProductListFilter{Query: "laptop", Limit: 20})
	if err != nil {
		t.Fatalf("List search: %v", err)
	}
	if total != 1 || list[0].Name != "Fancy Laptop" {
		t.Fatalf("search filter: total=%d %+v", total, list)
	}

	// Pagination.
	list, total, err = repos.Products.List(ctx, repository.ProductListFilter{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("List page: %v", err)
	}
	if total != 3 || len(list) != 2 {
		t.Fatalf("pagination: total=%d len=%d", total, len(list))
	}
}

func TestProductRepo_DecrementInventory(t *testing.T) {
	db := setupDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	cat := createCategory(t, repos.Categories, "Electronics", "electronics", nil)
	p := createProduct(t, repos.Products, "Phone", 19999, 3, cat.ID)

	ok, err := repos.Products.DecrementInventory(ctx, p.ID, 2)
	if err != nil || !ok {
		t.Fatalf("DecrementInventory: %v %v", ok, err)
	}

	// Not enough left: the row must stay untouched.
	ok, err = repos.Products.DecrementInventory(ctx, p.ID, 2)
	if err != nil {
		t.Fatalf("DecrementInventory: %v", err)
	}
	if ok {
		t.Fatalf("decrement below zero should be refused")
	}

	got, _ := repos.Products.GetByID(ctx, p.ID)
	if got.InventoryCount != 1 {
		t.Fatalf("inventory expected 1 got %d", got.InventoryCount)
	}

	ok, err = repos.Products.DecrementInventory(ctx, p.ID, 1)
	if err != nil || !ok {
		t.Fatalf("final decrement: %v %v", ok, err)
	}
	got, _ = repos.Products.GetByID(ctx, p.ID)
	if got.InventoryCount != 0 {
		t.Fatalf("inventory expected 0 got %d", got.InventoryCount)
	}
}

func TestOrderRepo_SingleActiveCart(t *testing.T) {
	db := setupDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repos.Users, "cart@example.com")

	first := &models.Order{UserID: user.ID, Status: models.OrderStatusCart}
	if err := repos.Orders.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The partial unique index allows exactly one cart-status order per user.
	second := &models.Order{UserID: user.ID, Status: models.OrderStatusCart}
	err := repos.Orders.Create(ctx, second)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey got %v", err)
	}

	// A placed order does not count against the limit.
	if err := repos.Orders.MarkPlaced(ctx, first.ID, models.OrderStatusPending, "1 Main St", "+15550100"); err != nil {
		t.Fatalf("MarkPlaced: %v", err)
	}
	third := &models.Order{UserID: user.ID, Status: models.OrderStatusCart}
	if err := repos.Orders.Create(ctx, third); err != nil {
		t.Fatalf("new cart after checkout: %v", err)
	}

	cart, err := repos.Orders.GetCartByUser(ctx, user.ID)
	if err != nil || cart == nil || cart.ID != third.ID {
		t.Fatalf("GetCartByUser: %v %v", cart, err)
	}
}

func TestOrderRepo_WithTx_RollsBack(t *testing.T) {
	db := setupDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repos.Users, "tx@example.com")
	cat := createCategory(t, repos.Categories, "Electronics", "electronics", nil)
	p := createProduct(t, repos.Products, "Phone", 19999, 5, cat.ID)

	ord := &models.Order{UserID: user.ID, Status: models.OrderStatusCart}
	if err := repos.Orders.Create(ctx, ord); err != nil {
		t.Fatalf("Create: %v", err)
	}

	boom := errors.New("boom")
	err := repos.Orders.WithTx(ctx, func(orders repository.OrderRepo, items repository.OrderItemRepo, products repository.ProductRepo) error {
		if ok, err := products.DecrementInventory(ctx, p.ID, 3); err != nil || !ok {
			t.Fatalf("decrement in tx: %v %v", ok, err)
		}
		if err := items.Create(ctx, &models.OrderItem{OrderID: ord.ID, ProductID: p.ID, Quantity: 3, PriceCents: p.PriceCents}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx should surface the callback error, got %v", err)
	}

	// Everything inside the failed transaction is undone.
	got, _ := repos.Products.GetByID(ctx, p.ID)
	if got.InventoryCount != 5 {
		t.Fatalf("inventory should be restored, got %d", got.InventoryCount)
	}
	sum, err := repos.OrderItems.SumByOrder(ctx, ord.ID)
	if err != nil || sum != 0 {
		t.Fatalf("no items should remain: sum=%d err=%v", sum, err)
	}
}

func TestOrderItemRepo_SumAndUniqueLine(t *testing.T) {
	db := setupDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repos.Users, "items@example.com")
	cat := createCategory(t, repos.Categories, "Clothing", "clothing", nil)
	shirt := createProduct(t, repos.Products, "Shirt", 1000, 50, cat.ID)
	socks := createProduct(t, repos.Products, "Socks", 550, 50, cat.ID)

	ord := &models.Order{UserID: user.ID, Status: models.OrderStatusCart}
	if err := repos.Orders.Create(ctx, ord); err != nil {
		t.Fatalf("Create order: %v", err)
	}

	if err := repos.OrderItems.Create(ctx, &models.OrderItem{OrderID: ord.ID, ProductID: shirt.ID, Quantity: 2, PriceCents: 1000}); err != nil {
		t.Fatalf("Create item: %v", err)
	}
	if err := repos.OrderItems.Create(ctx, &models.OrderItem{OrderID: ord.ID, ProductID: socks.ID, Quantity: 1, PriceCents: 550}); err != nil {
		t.Fatalf("Create item: %v", err)
	}

	sum, err := repos.OrderItems.SumByOrder(ctx, ord.ID)
	if err != nil {
		t.Fatalf("SumByOrder: %v", err)
	}
	if sum != 2550 {
		t.Fatalf("sum expected 2550 got %d", sum)
	}

	// One line per product and order.
	err = repos.OrderItems.Create(ctx, &models.OrderItem{OrderID: ord.ID, ProductID: shirt.ID, Quantity: 1, PriceCents: 1000})
	if err == nil {
		t.Fatalf("second line for the same product should be rejected")
	}

	item, err := repos.OrderItems.GetByOrderAndProduct(ctx, ord.ID, shirt.ID)
	if err != nil || item == nil || item.Quantity != 2 {
		t.Fatalf("GetByOrderAndProduct: %+v %v", item, err)
	}

	item2, parent, err := repos.OrderItems.GetByID(ctx, item.ID)
	if err != nil || item2 == nil || parent == nil || parent.ID != ord.ID {
		t.Fatalf("GetByID: %+v %+v %v", item2, parent, err)
	}
}

func TestWishlistRepo_UniquePerUserProduct(t *testing.T) {
	db := setupDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repos.Users, "wish@example.com")
	cat := createCategory(t, repos.Categories, "Clothing", "clothing", nil)
	shirt := createProduct(t, repos.Products, "Shirt", 1000, 50, cat.ID)

	if err := repos.Wishlists.Add(ctx, user.ID, shirt.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repos.Wishlists.Add(ctx, user.ID, shirt.ID); err == nil {
		t.Fatalf("duplicate wishlist entry should be rejected")
	}

	exists, err := repos.Wishlists.Exists(ctx, user.ID, shirt.ID)
	if err != nil || !exists {
		t.Fatalf("Exists: %v %v", exists, err)
	}

	list, err := repos.Wishlists.ListByUser(ctx, user.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByUser: %+v %v", list, err)
	}
	if list[0].Product == nil || list[0].Product.Name != "Shirt" {
		t.Fatalf("product not preloaded: %+v", list[0])
	}

	removed, err := repos.Wishlists.Remove(ctx, user.ID, shirt.ID)
	if err != nil || !removed {
		t.Fatalf("Remove: %v %v", removed, err)
	}
	removed, err = repos.Wishlists.Remove(ctx, user.ID, shirt.ID)
	if err != nil || removed {
		t.Fatalf("second Remove should report nothing removed: %v %v", removed, err)
	}
}

func TestOrderRepo_ListExcludesAndPaginates(t *testing.T) {
	db := setupDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repos.Users, "history@example.com")

	cart := &models.Order{UserID: user.ID, Status: models.OrderStatusCart}
	if err := repos.Orders.Create(ctx, cart); err != nil {
		t.Fatalf("Create cart: %v", err)
	}
	for i := 0; i < 3; i++ {
		o := &models.Order{UserID: user.ID, Status: models.OrderStatusPending}
		if err := repos.Orders.Create(ctx, o); err != nil {
			t.Fatalf("Create order: %v", err)
		}
	}

	cartStatus := models.OrderStatusCart
	list, total, err := repos.Orders.List(ctx, repository.OrderListFilter{
		UserID:        user.ID,
		ExcludeStatus: &cartStatus,
		Limit:         2,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("total expected 3 got %d", total)
	}
	if len(list) != 2 {
		t.Fatalf("page expected 2 got %d", len(list))
	}
	for _, o := range list {
		if o.Status == models.OrderStatusCart {
			t.Fatalf("cart leaked into the history")
		}
	}

	pending := models.OrderStatusPending
	_, total, err = repos.Orders.List(ctx, repository.OrderListFilter{UserID: user.ID, Status: &pending, Limit: 10})
	if err != nil || total != 3 {
		t.Fatalf("status filter: total=%d err=%v", total, err)
	}
}
