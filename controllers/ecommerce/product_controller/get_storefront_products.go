package product_controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
)

// GetStorefrontProducts godoc
// @Summary Get storefront products
// @Description Get paginated saunas for the storefront grid, optionally filtered by collection
// @Tags store
// @Produce json
// @Param q query string false "Search by name"
// @Param category query string false "Collection" Enums(barrel, cube, indoor, outdoor, outdoorshowers)
// @Param featured query bool false "Only featured products"
// @Param sortBy query string false "Sort by field" Enums(price, name, newest)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/products [get]
func GetStorefrontProducts(c *gin.Context) {
	page, limit := parsePagination(c)

	conditions := []string{"1 = 1"}
	args := []interface{}{}

	if category := strings.ToLower(strings.TrimSpace(c.Query("category"))); category != "" {
		if !models.IsProductCategory(category) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category"))
			return
		}
		conditions = append(conditions, "p.type = ?")
		args = append(args, category)
	}

	if c.Query("featured") == "true" {
		conditions = append(conditions, "p.is_featured = true")
	}

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		conditions = append(conditions, "p.name ILIKE ?")
		args = append(args, "%"+q+"%")
	}

	whereClause := strings.Join(conditions, " AND ")
	orderClause := buildStorefrontOrderClause(c.Query("sortBy"), c.DefaultQuery("sortOrder", "desc"))

	products, totalCount, err := fetchStorefrontProductsFromDB(whereClause, orderClause, args, page, limit)
	if err != nil {
		log.Printf("ERROR in fetchStorefrontProductsFromDB: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	for i := range products {
		products[i].Image = cloudinaryService.ThumbnailURL(products[i].Image)
	}

	totalPages := (totalCount + limit - 1) / limit

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Products fetched successfully",
		products,
		&models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      totalCount,
			TotalPages: totalPages,
		},
	))
}

// ─────────────────────────────────────────────────────────────
// Database fetcher (THIN RESPONSE)
// ─────────────────────────────────────────────────────────────

func fetchStorefrontProductsFromDB(
	whereClause string,
	orderClause string,
	args []interface{},
	page int,
	limit int,
) ([]models.StorefrontProductResponse, int, error) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	offset := (page - 1) * limit

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM products p
		WHERE %s
	`, whereClause)

	var totalCount int64
	if err := config.StoreGorm.
		WithContext(ctx).
		Raw(countQuery, args...).
		Scan(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	dataQuery := fmt.Sprintf(`
	SELECT
		p.id,
		p.name,
		p.type,
		p.designation,
		p.base_price,
		p.is_featured,
		COALESCE((
			SELECT i.url FROM images i
			WHERE i.product_id = p.id
			ORDER BY i.is_primary DESC, i."order" ASC
			LIMIT 1
		), '') AS image
	FROM products p
	WHERE %s
	ORDER BY %s
	LIMIT ? OFFSET ?
`, whereClause, orderClause)

	dataArgs := append(args, limit, offset)

	products := make([]models.StorefrontProductResponse, 0)

	if err := config.StoreGorm.
		WithContext(ctx).
		Raw(dataQuery, dataArgs...).
		Scan(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, int(totalCount), nil
}
