// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/database"
	"github.com/javajoker/orders-backend/internal/models"
	"github.com/javajoker/orders-backend/internal/utils"
)

type CatalogService struct {
	db      *gorm.DB
	fetcher *FeedFetcher
}

type ImportFeedRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type ProductFilter struct {
	ShopID     *uint
	CategoryID *uint
	utils.PaginationParams
}

// ImportResult summarizes what a feed replaced.
type ImportResult struct {
	ShopID       uint `json:"shop_id"`
	Categories   int  `json:"categories"`
	ProductInfos int  `json:"product_infos"`
	Parameters   int  `json:"parameters"`
}

func NewCatalogService(db *gorm.DB, fetcher *FeedFetcher) *CatalogService {
	return &CatalogService{
		db:      db,
		fetcher: fetcher,
	}
}

// ImportFromURL fetches the partner's feed and replaces their catalog with it.
func (s *CatalogService) ImportFromURL(ctx context.Context, userID uint, req *ImportFeedRequest) (*ImportResult, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	data, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	feed, err := parseFeedBytes(data)
	if err != nil {
		return nil, err
	}

	return s.Import(ctx, userID, feed, req.URL)
}

// Import replaces every listing of the feed's shop in a single transaction. Shop and
// category rows are reused; listings, their parameters and basket or order lines
// pointing at them are rebuilt or dropped.
func (s *CatalogService) Import(ctx context.Context, userID uint, feed *CatalogFeed, sourceURL string) (*ImportResult, error) {
	result := &ImportResult{}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		shop, err := s.upsertShop(tx, userID, feed.Shop, sourceURL)
		if err != nil {
			return err
		}
		result.ShopID = shop.ID

		for _, fc := range feed.Categories {
			if err := s.linkCategory(tx, shop, fc); err != nil {
				return err
			}
			result.Categories++
		}

		if err := s.clearListings(tx, shop.ID); err != nil {
			return err
		}

		parameters := make(map[string]uint)
		for _, good := range feed.Goods {
			count, err := s.createListing(tx, shop.ID, good, parameters)
			if err != nil {
				return err
			}
			result.ProductInfos++
			result.Parameters += count
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":       userID,
		"shop_id":       result.ShopID,
		"categories":    result.Categories,
		"product_infos": result.ProductInfos,
	}).Info("Catalog imported")

	return result, nil
}

func (s *CatalogService) upsertShop(tx *gorm.DB, userID uint, name, sourceURL string) (*models.Shop, error) {
	var shop models.Shop
	err := tx.Where("name = ?", name).First(&shop).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		shop = models.Shop{Name: name, URL: sourceURL, UserID: userID, State: true}
		if err := tx.Create(&shop).Error; err != nil {
			return nil, fmt.Errorf("failed to create shop: %w", err)
		}
		return &shop, nil
	case err != nil:
		return nil, fmt.Errorf("database error: %w", err)
	}

	if shop.UserID != userID {
		return nil, ErrShopNameTaken
	}

	if sourceURL != "" && shop.URL != sourceURL {
		if err := tx.Model(&shop).Update("url", sourceURL).Error; err != nil {
			return nil, fmt.Errorf("failed to update shop: %w", err)
		}
	}
	return &shop, nil
}

func (s *CatalogService) linkCategory(tx *gorm.DB, shop *models.Shop, fc FeedCategory) error {
	var category models.Category
	err := tx.First(&category, fc.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		category = models.Category{ID: fc.ID, Name: fc.Name}
		if err := tx.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
	case err != nil:
		return fmt.Errorf("database error: %w", err)
	case category.Name != fc.Name:
		return &FeedError{Reason: fmt.Sprintf("category %d is already named %q", fc.ID, category.Name)}
	}

	if err := tx.Model(&category).Association("Shops").Append(shop); err != nil {
		return fmt.Errorf("failed to link category: %w", err)
	}
	return nil
}

func (s *CatalogService) clearListings(tx *gorm.DB, shopID uint) error {
	listings := func() *gorm.DB {
		return tx.Model(&models.ProductInfo{}).Select("id").Where("shop_id = ?", shopID)
	}

	if err := tx.Where("product_info_id IN (?)", listings()).Delete(&models.ProductParameter{}).Error; err != nil {
		return fmt.Errorf("failed to delete product parameters: %w", err)
	}

	result := tx.Where("product_info_id IN (?)", listings()).Delete(&models.OrderItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete order items: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		logrus.WithFields(logrus.Fields{
			"shop_id": shopID,
			"items":   result.RowsAffected,
		}).Warn("Order items dropped with replaced listings")
	}

	if err := tx.Where("shop_id = ?", shopID).Delete(&models.ProductInfo{}).Error; err != nil {
		return fmt.Errorf("failed to delete product listings: %w", err)
	}
	return nil
}

func (s *CatalogService) createListing(tx *gorm.DB, shopID uint, good FeedGood, parameters map[string]uint) (int, error) {
	var product models.Product
	if err := tx.Where(models.Product{Name: good.Name, CategoryID: good.Category}).FirstOrCreate(&product).Error; err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	info := models.ProductInfo{
		ProductID:  product.ID,
		ShopID:     shopID,
		ExternalID: good.ID,
		Model:      good.Model,
		Quantity:   good.Quantity,
		Price:      good.Price,
		PriceRRC:   good.PriceRRC,
	}
	if err := tx.Create(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, &FeedError{Reason: fmt.Sprintf("good %d is listed more than once", good.ID)}
		}
		return 0, fmt.Errorf("failed to create product listing: %w", err)
	}

	names := make([]string, 0, len(good.Parameters))
	for name := range good.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		parameterID, ok := parameters[name]
		if !ok {
			var parameter models.Parameter
			if err := tx.Where(models.Parameter{Name: name}).FirstOrCreate(&parameter).Error; err != nil {
				return 0, fmt.Errorf("failed to create parameter: %w", err)
			}
			parameterID = parameter.ID
			parameters[name] = parameterID
		}

		pp := models.ProductParameter{
			ProductInfoID: info.ID,
			ParameterID:   parameterID,
			Value:         string(good.Parameters[name]),
		}
		if err := tx.Create(&pp).Error; err != nil {
			return 0, fmt.Errorf("failed to create product parameter: %w", err)
		}
	}

	return len(names), nil
}

// ListProducts returns listings of active shops, optionally narrowed by shop and category.
func (s *CatalogService) ListProducts(ctx context.Context, filter ProductFilter) ([]models.ProductInfo, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.ProductInfo{}).
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Joins("JOIN products ON products.id = product_infos.product_id").
		Where("shops.state = ?", true)

	if filter.ShopID != nil {
		query = query.Where("product_infos.shop_id = ?", *filter.ShopID)
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var infos []models.ProductInfo
	err := utils.ApplyPagination(query, filter.PaginationParams).
		Preload("Product.Category").
		Preload("ProductParameters.Parameter").
		Order("product_infos.id").
		Find(&infos).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return infos, total, nil
}

func (s *CatalogService) ListShops(ctx context.Context, params utils.PaginationParams) ([]models.Shop, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Shop{}).Where("state = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shops: %w", err)
	}

	var shops []models.Shop
	if err := utils.ApplyPagination(query, params).Order("id").Find(&shops).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list shops: %w", err)
	}
	return shops, total, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, params utils.PaginationParams) ([]models.Category, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Category{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	var categories []models.Category
	if err := utils.ApplyPagination(query, params).Order("id").Find(&categories).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}
