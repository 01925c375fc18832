package services

import (
	"context"
	"fmt"

	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/shopspring/decimal"
)

type CartSummary struct {
	Items []models.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

type CartService struct {
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewCartService(cartItemRepo repositories.CartItemRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CartService {
	return &CartService{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// AddItem bumps the quantity when the product is already in the cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, qty int) (*CartSummary, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || product.IsDeleted {
		return nil, ErrProductNotFound
	}

	existing, err := s.cartItemRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing cart item: %w", err)
	}

	newQty := qty
	if existing != nil {
		newQty += existing.Qty
	}
	if product.Stock < newQty {
		return nil, fmt.Errorf("%w: product '%s' has insufficient stock. Available: %d, Requested: %d",
			ErrInsufficientStock, product.Name, product.Stock, newQty)
	}

	if existing != nil {
		if err := s.cartItemRepo.UpdateQty(ctx, existing.ID, newQty); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		item := &models.CartItem{UserID: userID, ProductID: productID, Qty: qty}
		if err := s.cartItemRepo.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return s.GetCart(ctx, userID)
}

func (s *CartService) UpdateItemQty(ctx context.Context, userID, itemID string, qty int) (*CartSummary, error) {
	item, err := s.cartItemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	if item == nil || item.UserID != userID {
		return nil, fmt.Errorf("cart item not found")
	}

	if qty <= 0 {
		if err := s.cartItemRepo.Delete(ctx, itemID); err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
		return s.GetCart(ctx, userID)
	}

	if item.Product.Stock < qty {
		return nil, fmt.Errorf("%w: product '%s' has insufficient stock. Available: %d, Requested: %d",
			ErrInsufficientStock, item.Product.Name, item.Product.Stock, qty)
	}

	if err := s.cartItemRepo.UpdateQty(ctx, itemID, qty); err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*CartSummary, error) {
	item, err := s.cartItemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	if item == nil || item.UserID != userID {
		return nil, fmt.Errorf("cart item not found")
	}
	if err := s.cartItemRepo.Delete(ctx, itemID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveProduct(ctx context.Context, userID, productID string) (*CartSummary, error) {
	if err := s.cartItemRepo.DeleteByUserAndProduct(ctx, userID, productID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*CartSummary, error) {
	items, err := s.cartItemRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	return &CartSummary{Items: items, Total: total}, nil
}
