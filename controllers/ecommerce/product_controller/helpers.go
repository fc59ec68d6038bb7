package product_controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	catalog_cache "github.com/Pacific-Tide/pacific-tide-backend/cache"
	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/pricing"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

var cloudinaryService *services.CloudinaryService

// InitCloudinary enables thumbnail URLs for Cloudinary-hosted images
func InitCloudinary(cloudName, apiKey, apiSecret string) error {
	var err error
	cloudinaryService, err = services.NewCloudinaryService(cloudName, apiKey, apiSecret)
	return err
}

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

// buildStorefrontOrderClause builds the ORDER BY clause shared by handlers.
func buildStorefrontOrderClause(sortBy, sortOrder string) string {
	order := "DESC"
	if strings.ToUpper(sortOrder) == "ASC" {
		order = "ASC"
	}

	switch sortBy {
	case "price":
		return fmt.Sprintf("p.base_price %s", order)
	case "name":
		return fmt.Sprintf("p.name %s", order)
	case "newest":
		return fmt.Sprintf("p.created_at %s", order)
	default:
		return "p.display_order ASC, p.name ASC"
	}
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "12"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 12
	}

	return page, limit
}

func parseProductID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ─────────────────────────────────────────────────────────────
// Product loader (options, heaters and images preloaded)
// ─────────────────────────────────────────────────────────────

// loadProduct is a variable so handler tests can serve fixtures without a database.
var loadProduct = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := catalog_cache.GetProduct(id); ok {
		return p, nil
	}

	var product models.Product
	err := config.StoreGorm.
		WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Preload("Heaters", func(db *gorm.DB) *gorm.DB {
			return db.Order("base_price ASC, name ASC")
		}).
		Preload("Heaters.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	catalog_cache.SetProduct(&product)
	return &product, nil
}

// ─────────────────────────────────────────────────────────────
// Response builders
// ─────────────────────────────────────────────────────────────

func priceResponse(cfg pricing.Configuration, b pricing.Breakdown) models.PriceResponse {
	lines := make([]models.PriceLine, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, models.PriceLine{
			Kind:   string(l.Kind),
			Name:   l.Name,
			Group:  l.Group,
			Amount: l.Amount,
		})
	}
	return models.PriceResponse{
		Configuration: cfg.Request(),
		Lines:         lines,
		Subtotal:      b.Subtotal(),
		Delivery:      b.Delivery(),
		Total:         b.Total(),
	}
}

// buildConfiguratorView copies what it returns; the product may be shared through the cache.
func buildConfiguratorView(product *models.Product) models.ConfiguratorResponse {
	catalog := pricing.NewCatalog(product)
	cfg := pricing.NewConfiguration(product)

	heaters := make([]models.Heater, len(catalog.Heaters))
	for i, h := range catalog.Heaters {
		h.Images = thumbnails(h.Images)
		heaters[i] = h
	}

	return models.ConfiguratorResponse{
		Product: models.StorefrontProductDetail{
			ID:             product.ID,
			Name:           product.Name,
			Description:    product.Description,
			Type:           product.Type,
			Designation:    product.Designation,
			CollectionType: product.CollectionType,
			Series:         product.Series,
			Dimensions:     product.Dimensions,
			Specifications: product.Specifications,
			BasePrice:      product.BasePrice,
			Images:         thumbnails(product.Images),
		},
		Installation: optionThumbnails(catalog.Installation),
		WoodTypes:    optionThumbnails(catalog.WoodTypes),
		AddOns:       optionThumbnails(catalog.AddOns),
		Heaters:      heaters,
		Defaults:     cfg.Request(),
		Price:        priceResponse(cfg, pricing.Compute(product, cfg)),
	}
}

func thumbnails(images []models.Image) []models.Image {
	out := make([]models.Image, len(images))
	for i, img := range images {
		img.URL = cloudinaryService.ThumbnailURL(img.URL)
		out[i] = img
	}
	return out
}

func optionThumbnails(options []models.ProductOption) []models.ProductOption {
	out := make([]models.ProductOption, len(options))
	for i, o := range options {
		if o.ImageURL != nil {
			url := cloudinaryService.ThumbnailURL(*o.ImageURL)
			o.ImageURL = &url
		}
		out[i] = o
	}
	return out
}
