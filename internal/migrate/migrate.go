package migrate

import (
	"context"

	"github.com/muss3ab/tsh/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // CHECK constraints
	CreateIndexes          bool // indexes and UNIQUE (incl. partial cart index)
	CreateFKsViaSQL        bool // FKs via SQL on top of GORM constraints
	CreateUpdatedAtTrigger bool // updated_at trigger
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateStoreDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("starting store database migration")

	if opt.CreateExtensions {
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("failed to enable pgcrypto", zap.Error(err))
			return err
		}
	}

	log.Info("creating tables")
	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Wishlist{},
	); err != nil {
		log.Error("failed to create tables", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_products_updated ON products;
CREATE TRIGGER trg_products_updated
BEFORE UPDATE ON products
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("failed to create updated_at triggers", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("creating CHECK constraints")

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('cart','pending','completed','cancelled'));
`).Error; err != nil {
			log.Error("failed to create status CHECK", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("failed to create order_items.quantity CHECK", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_price_non_negative;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_price_non_negative
  CHECK (price_cents >= 0);
`).Error; err != nil {
			log.Error("failed to create order_items.price CHECK", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_total_price_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_total_price_non_negative
  CHECK (total_price_cents >= 0);
`).Error; err != nil {
			log.Error("failed to create orders.total_price CHECK", zap.Error(err))
			return err
		}

		// Inventory can never go negative even if application logic regresses.
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_inventory_non_negative;
ALTER TABLE products
  ADD CONSTRAINT chk_products_inventory_non_negative
  CHECK (inventory_count >= 0);
`).Error; err != nil {
			log.Error("failed to create products.inventory CHECK", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_price_non_negative;
ALTER TABLE products
  ADD CONSTRAINT chk_products_price_non_negative
  CHECK (price_cents >= 0);
`).Error; err != nil {
			log.Error("failed to create products.price CHECK", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		log.Info("creating indexes")

		if err := db.WithContext(ctx).Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email_lower
ON users (lower(email));
`).Error; err != nil {
			log.Error("failed to create ux_users_email_lower", zap.Error(err))
			return err
		}

		// At most one cart-status order per user.
		if err := db.WithContext(ctx).Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_user_active_cart
ON orders (user_id) WHERE status = 'cart';
`).Error; err != nil {
			log.Error("failed to create ux_orders_user_active_cart", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_order_items_order_product
ON order_items (order_id, product_id);
`).Error; err != nil {
			log.Error("failed to create ux_order_items_order_product", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_wishlists_user_product
ON wishlists (user_id, product_id);
`).Error; err != nil {
			log.Error("failed to create ux_wishlists_user_product", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_user_created
ON orders (user_id, created_at DESC);
`).Error; err != nil {
			log.Error("failed to create ix_orders_user_created", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_products_category
ON products (category_id);
`).Error; err != nil {
			log.Error("failed to create ix_products_category", zap.Error(err))
			return err
		}
	}

	if opt.CreateFKsViaSQL {
		log.Info("creating foreign keys")

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("failed to create FK order_items.order_id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_product,
  ADD CONSTRAINT fk_order_items_product
    FOREIGN KEY (product_id) REFERENCES products(id);
`).Error; err != nil {
			log.Error("failed to create FK order_items.product_id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS fk_products_category,
  ADD CONSTRAINT fk_products_category
    FOREIGN KEY (category_id) REFERENCES categories(id);
`).Error; err != nil {
			log.Error("failed to create FK products.category_id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE categories
  DROP CONSTRAINT IF EXISTS fk_categories_parent,
  ADD CONSTRAINT fk_categories_parent
    FOREIGN KEY (parent_id) REFERENCES categories(id);
`).Error; err != nil {
			log.Error("failed to create FK categories.parent_id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_user,
  ADD CONSTRAINT fk_orders_user
    FOREIGN KEY (user_id) REFERENCES users(id);
`).Error; err != nil {
			log.Error("failed to create FK orders.user_id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE wishlists
  DROP CONSTRAINT IF EXISTS fk_wishlists_user,
  ADD CONSTRAINT fk_wishlists_user
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;
ALTER TABLE wishlists
  DROP CONSTRAINT IF EXISTS fk_wishlists_product,
  ADD CONSTRAINT fk_wishlists_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("failed to create wishlist FKs", zap.Error(err))
			return err
		}
	}

	log.Info("store database migration finished")
	return nil
}
