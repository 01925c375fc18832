package services

import (
	"context"
	"fmt"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/shopspring/decimal"
)

type ProductInput struct {
	Name           string          `json:"name" validate:"required"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price" validate:"required"`
	Stock          int             `json:"stock" validate:"gte=0"`
	CategoryID     *string         `json:"category_id"`
	ImageURL       string          `json:"image_url"`
	ImagePublicID  string          `json:"-"`
	AdditionalInfo string          `json:"additional_info"`
}

// CatalogService covers product and category administration on top of
// the public reads.
type CatalogService struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepository
}

func NewCatalogService(productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := helpers.Validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	product := &models.Product{
		Name:           input.Name,
		Slug:           helpers.Slugify(input.Name),
		Description:    input.Description,
		Price:          input.Price,
		Stock:          input.Stock,
		CategoryID:     input.CategoryID,
		ImageURL:       input.ImageURL,
		ImagePublicID:  input.ImagePublicID,
		AdditionalInfo: input.AdditionalInfo,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if input.Name != "" && input.Name != product.Name {
		product.Name = input.Name
		product.Slug = helpers.Slugify(input.Name)
	}
	product.Description = input.Description
	if !input.Price.IsZero() {
		product.Price = input.Price
	}
	product.Stock = input.Stock
	product.CategoryID = input.CategoryID
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
		product.ImagePublicID = input.ImagePublicID
	}
	product.AdditionalInfo = input.AdditionalInfo

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.SoftDelete(ctx, id)
}

func (s *CatalogService) RestoreProduct(ctx context.Context, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Restore(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, imageURL string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateCategory
	}

	category := &models.Category{
		Name:     name,
		Slug:     helpers.Slugify(name),
		ImageURL: imageURL,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id, name, imageURL string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category not found")
	}

	if name != "" && name != category.Name {
		existing, err := s.categoryRepo.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, ErrDuplicateCategory
		}
		category.Name = name
		category.Slug = helpers.Slugify(name)
	}
	if imageURL != "" {
		category.ImageURL = imageURL
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes the category and nulls out the reference on
// its products; the products themselves survive.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return fmt.Errorf("category not found")
	}
	return s.categoryRepo.DeleteAndDetachProducts(ctx, id)
}
