package catalog

import (
	"context"

	"github.com/gestock/backend/internal/domain/catalog"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService manages the catalog. Price updates always append an entry
// to the price history log.
type ProductService struct {
	products     catalog.ProductRepository
	categories   catalog.CategoryRepository
	priceChanges catalog.PriceChangeRepository
	logger       *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	priceChanges catalog.PriceChangeRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:     products,
		categories:   categories,
		priceChanges: priceChanges,
		logger:       logger,
	}
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, actorID uuid.UUID) (*ProductResponse, error) {
	exists, err := s.products.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.Name, req.Description, req.Price, &actorID)
	if err != nil {
		return nil, err
	}
	product.SetCategory(req.CategoryID)

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	response := NewProductResponse(product)
	return &response, nil
}

// Update edits a product. A price change is recorded in the history log.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest, actorID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description, &actorID); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	var priceChange *catalog.PriceChange
	if req.Price != nil && !req.Price.Equal(product.Price) {
		oldPrice, err := product.ChangePrice(*req.Price, &actorID)
		if err != nil {
			return nil, err
		}
		priceChange = catalog.NewPriceChange(product.ID, oldPrice, product.Price, &actorID)
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	if priceChange != nil {
		if err := s.priceChanges.Append(ctx, priceChange); err != nil {
			return nil, err
		}
		s.logger.Info("product price changed",
			zap.String("product_id", product.ID.String()),
			zap.String("old_price", priceChange.OldPrice.String()),
			zap.String("new_price", priceChange.NewPrice.String()),
		)
	}

	response := NewProductResponse(product)
	return &response, nil
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := NewProductResponse(product)
	return &response, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	page, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewProductResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Delete soft-deletes a product, keeping historical order lines intact
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID, actorID uuid.UUID) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	product.SoftDelete()
	product.UpdatedBy = &actorID
	return s.products.Save(ctx, product)
}

// PriceHistory returns the append-only price change log of a product
func (s *ProductService) PriceHistory(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[PriceChangeResponse], error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	page, err := s.priceChanges.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]PriceChangeResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewPriceChangeResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// CreateCategory adds a category
func (s *ProductService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	response := NewCategoryResponse(category)
	return &response, nil
}

// ListCategories returns every category
func (s *ProductService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, NewCategoryResponse(&categories[i]))
	}
	return items, nil
}
