package main

import (
	"context"
	"fmt"
	"os"

	"github.com/muss3ab/tsh/config"
	"github.com/muss3ab/tsh/internal/hashing"
	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/repository"
	"github.com/muss3ab/tsh/pkg/database"
	"github.com/muss3ab/tsh/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Seeds demo catalog data plus an admin and a customer account. Safe to run
// more than once: existing slugs and emails are skipped.
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()
	repos := repository.New(db)
	hasher := hashing.NewBcrypt(0)

	seedUser(ctx, repos, hasher, log, "Admin", "admin@example.com", "password123", models.RoleAdmin)
	seedUser(ctx, repos, hasher, log, "Test Customer", "customer@example.com", "password123", models.RoleCustomer)

	electronics := seedCategory(ctx, repos, log, "Electronics", "electronics", nil)
	clothing := seedCategory(ctx, repos, log, "Clothing", "clothing", nil)
	home := seedCategory(ctx, repos, log, "Home & Garden", "home-garden", nil)

	var laptops, phones, mens *models.Category
	if electronics != nil {
		laptops = seedCategory(ctx, repos, log, "Laptops", "laptops", &electronics.ID)
		phones = seedCategory(ctx, repos, log, "Phones", "phones", &electronics.ID)
	}
	if clothing != nil {
		mens = seedCategory(ctx, repos, log, "Men's Clothing", "mens-clothing", &clothing.ID)
	}

	type productSeed struct {
		name      string
		desc      string
		cents     int64
		inventory int32
		category  *models.Category
	}
	seeds := []productSeed{
		{"UltraBook 14", "Thin 14-inch laptop, 16GB RAM, 512GB SSD", 129900, 15, laptops},
		{"Gamer Pro 17", "17-inch gaming laptop with a dedicated GPU", 189950, 8, laptops},
		{"Pixelphone X", "6.1-inch OLED smartphone, 128GB", 79900, 30, phones},
		{"Budget Phone A2", "Entry-level smartphone with a two-day battery", 19999, 50, phones},
		{"Classic Oxford Shirt", "Cotton oxford shirt, slim fit", 4550, 100, mens},
		{"Denim Jacket", "Mid-wash denim jacket", 8900, 40, mens},
		{"Ceramic Planter Set", "Set of three glazed planters", 3475, 60, home},
		{"Garden Tool Kit", "Trowel, pruner and gloves in a canvas roll", 2550, 25, home},
	}
	for _, s := range seeds {
		if s.category == nil {
			continue
		}
		seedProduct(ctx, repos, log, s.name, s.desc, s.cents, s.inventory, s.category.ID)
	}

	log.Info("seeding completed")
}

func seedUser(ctx context.Context, repos *repository.Repository, hasher *hashing.Bcrypt, log *zap.Logger, name, email, password string, role models.Role) {
	exists, err := repos.Users.ExistsByEmail(ctx, email)
	if err != nil {
		log.Fatal("seed user lookup failed", zap.Error(err))
	}
	if exists {
		return
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatal("seed password hash failed", zap.Error(err))
	}
	u := &models.User{Name: name, Email: email, Password: hash, Role: role}
	if err := repos.Users.Create(ctx, u); err != nil {
		log.Fatal("seed user create failed", zap.Error(err))
	}
	log.Info("seeded user", zap.String("email", email), zap.String("role", string(role)))
}

func seedCategory(ctx context.Context, repos *repository.Repository, log *zap.Logger, name, slug string, parentID *uuid.UUID) *models.Category {
	existing, err := repos.Categories.GetBySlug(ctx, slug)
	if err != nil {
		log.Fatal("seed category lookup failed", zap.Error(err))
	}
	if existing != nil {
		return existing
	}

	c := &models.Category{Name: name, Slug: slug, ParentID: parentID}
	if err := repos.Categories.Create(ctx, c); err != nil {
		log.Fatal("seed category create failed", zap.Error(err))
	}
	log.Info("seeded category", zap.String("slug", slug))
	return c
}

func seedProduct(ctx context.Context, repos *repository.Repository, log *zap.Logger, name, desc string, cents int64, inventory int32, categoryID uuid.UUID) {
	existing, _, err := repos.Products.List(ctx, repository.ProductListFilter{Query: name, Limit: 1})
	if err != nil {
		log.Fatal("seed product lookup failed", zap.Error(err))
	}
	if len(existing) > 0 && existing[0].Name == name {
		return
	}

	p := &models.Product{
		Name:           name,
		Description:    desc,
		PriceCents:     cents,
		ImageURL:       fmt.Sprintf("https://placehold.co/600x400?text=%s", slugify(name)),
		InventoryCount: inventory,
		CategoryID:     categoryID,
	}
	if err := repos.Products.Create(ctx, p); err != nil {
		log.Fatal("seed product create failed", zap.Error(err))
	}
	log.Info("seeded product", zap.String("name", name))
}

func slugify(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '-')
		}
	}
	return string(out)
}
