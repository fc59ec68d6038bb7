package heater_controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	catalog_cache "github.com/Pacific-Tide/pacific-tide-backend/cache"
	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrHeaterNotFound = errors.New("heater not found")

// listHeaters and findHeater are variables so handler tests can run without a database.
var listHeaters = func(ctx context.Context, heaterType models.HeaterType) ([]models.Heater, error) {
	if cached, ok := catalog_cache.GetHeaters(string(heaterType)); ok {
		return cached, nil
	}

	query := config.StoreGorm.
		WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Order("is_featured DESC, base_price ASC, name ASC")
	if heaterType != "" {
		query = query.Where("type = ?", heaterType)
	}

	heaters := make([]models.Heater, 0)
	if err := query.Find(&heaters).Error; err != nil {
		return nil, err
	}

	catalog_cache.SetHeaters(string(heaterType), heaters)
	return heaters, nil
}

var findHeater = func(ctx context.Context, id uuid.UUID) (*models.Heater, error) {
	var heater models.Heater
	err := config.StoreGorm.
		WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		First(&heater, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHeaterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &heater, nil
}

// GetHeaters godoc
// @Summary List heaters
// @Description Lists sauna heaters with their option groups, optionally filtered by type
// @Tags store
// @Produce json
// @Param type query string false "Heater type" Enums(ELECTRIC, WOOD)
// @Success 200 {object} models.ApiResponse{data=[]models.Heater}
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/heaters [get]
func GetHeaters(c *gin.Context) {
	heaterType := models.HeaterType(strings.ToUpper(strings.TrimSpace(c.Query("type"))))
	if heaterType != "" && heaterType != models.HeaterTypeElectric && heaterType != models.HeaterTypeWood {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid heater type"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	heaters, err := listHeaters(ctx, heaterType)
	if err != nil {
		log.Printf("[store] failed to list heaters: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch heaters"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Heaters fetched successfully", heaters))
}

// GetHeaterByID godoc
// @Summary Get a heater
// @Tags store
// @Produce json
// @Param id path string true "Heater ID"
// @Success 200 {object} models.ApiResponse{data=models.Heater}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/heaters/{id} [get]
func GetHeaterByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid heater ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	heater, err := findHeater(ctx, id)
	if errors.Is(err, ErrHeaterNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Heater not found"))
		return
	}
	if err != nil {
		log.Printf("[store] failed to load heater %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch heater"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Heater fetched successfully", heater))
}
