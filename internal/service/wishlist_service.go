package service

import (
	"context"

	"github.com/muss3ab/tsh/internal/models"
	"github.com/muss3ab/tsh/internal/repository"

	"github.com/google/uuid"
)

type WishlistService interface {
	ListWishlist(ctx context.Context) ([]models.Product, error)
	AddToWishlist(ctx context.Context, productID uuid.UUID) error
	RemoveFromWishlist(ctx context.Context, productID uuid.UUID) error
}

type wishlistService struct {
	wishlists repository.WishlistRepo
	products  repository.ProductRepo
}

func NewWishlistService(wishlists repository.WishlistRepo, products repository.ProductRepo) WishlistService {
	return &wishlistService{
		wishlists: wishlists,
		products:  products,
	}
}

func (s *wishlistService) ListWishlist(ctx context.Context) ([]models.Product, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.wishlists.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(entries))
	for _, e := range entries {
		if e.Product != nil {
			products = append(products, *e.Product)
		}
	}
	return products, nil
}

func (s *wishlistService) AddToWishlist(ctx context.Context, productID uuid.UUID) error {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return err
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}

	exists, err := s.wishlists.Exists(ctx, userID, productID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyInWishlist
	}

	return s.wishlists.Add(ctx, userID, productID)
}

func (s *wishlistService) RemoveFromWishlist(ctx context.Context, productID uuid.UUID) error {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return err
	}

	removed, err := s.wishlists.Remove(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInWishlist
	}
	return nil
}
