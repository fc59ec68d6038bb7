package product_controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pacific-Tide/pacific-tide-backend/controllers/ecommerce/quote_controller"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSender struct {
	requests []*models.QuoteRequest
}

func (s *capturingSender) Notify(ctx context.Context, req *models.QuoteRequest) (*services.SendResult, error) {
	s.requests = append(s.requests, req)
	return &services.SendResult{MessageID: "<id@test>", Accepted: []string{"owner@test"}}, nil
}

type sauna struct {
	product *models.Product
	heater  uuid.UUID
	diy     uuid.UUID
	cedar   uuid.UUID
	lights  uuid.UUID
}

func newSauna() sauna {
	var heaterOptions models.HeaterOptions
	heaterOptions.Set("stones", []models.HeaterChoice{
		{Type: "Standard", Price: decimal.Zero},
		{Type: "Premium", Price: decimal.NewFromInt(150)},
	})
	heater := models.Heater{ID: uuid.New(), Name: "Huum Drop 6kW", BasePrice: decimal.NewFromInt(1200), Options: heaterOptions}

	diy := models.ProductOption{ID: uuid.New(), Name: "DIY Installation", OptionType: models.OptionTypeInstallation, IsDefault: true}
	diy.ApplyLegacyDeliveryDefault()
	cedar := models.ProductOption{ID: uuid.New(), Name: "Canadian Red Cedar", OptionType: models.OptionTypeWoodType, IsDefault: true}
	lights := models.ProductOption{ID: uuid.New(), Name: "LED Lighting", OptionType: models.OptionTypeFinish, Price: decimal.NewFromInt(300)}

	return sauna{
		product: &models.Product{
			ID:        uuid.New(),
			Name:      "Barrel Sauna 6ft",
			Type:      "barrel",
			BasePrice: decimal.NewFromInt(4000),
			Options:   []models.ProductOption{diy, cedar, lights},
			Heaters:   []models.Heater{heater},
			Images:    []models.Image{{URL: "https://cdn.example.com/barrel.jpg", IsPrimary: true}},
		},
		heater: heater.ID,
		diy:    diy.ID,
		cedar:  cedar.ID,
		lights: lights.ID,
	}
}

func setup(t *testing.T, s sauna) (*gin.Engine, *capturingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	original := loadProduct
	loadProduct = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		if id == s.product.ID {
			return s.product, nil
		}
		return nil, ErrProductNotFound
	}
	sender := &capturingSender{}
	quote_controller.Init(sender)
	t.Cleanup(func() {
		loadProduct = original
		quote_controller.Init(nil)
	})

	r := gin.New()
	r.GET("/store/products/:id", GetStorefrontProductByID)
	r.POST("/store/products/:id/price", PriceConfiguration)
	r.POST("/store/products/:id/quote", RequestProductQuote)
	return r, sender
}

func do(r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestGetStorefrontProductByID_ConfiguratorView(t *testing.T) {
	s := newSauna()
	r, _ := setup(t, s)

	w, out := do(r, http.MethodGet, "/store/products/"+s.product.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := out["data"].(map[string]any)
	assert.Len(t, data["installation"], 1)
	assert.Len(t, data["woodTypes"], 1)
	assert.Len(t, data["addOns"], 1)
	assert.Len(t, data["heaters"], 1)

	defaults := data["defaults"].(map[string]any)
	assert.Equal(t, s.diy.String(), defaults["installationId"])
	assert.Equal(t, s.cedar.String(), defaults["woodTypeId"])
	assert.Nil(t, defaults["heaterId"])

	price := data["price"].(map[string]any)
	assert.Equal(t, 4000.0, price["subtotal"])
	assert.Equal(t, 350.0, price["delivery"])
	assert.Equal(t, 4350.0, price["total"])

	images := data["product"].(map[string]any)["images"].([]any)
	assert.Equal(t, "https://cdn.example.com/barrel.jpg", images[0].(map[string]any)["url"])
}

func TestGetStorefrontProductByID_Errors(t *testing.T) {
	r, _ := setup(t, newSauna())

	w, _ := do(r, http.MethodGet, "/store/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out := do(r, http.MethodGet, "/store/products/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", out["message"])
}

func TestPriceConfiguration(t *testing.T) {
	s := newSauna()
	r, _ := setup(t, s)

	w, out := do(r, http.MethodPost, "/store/products/"+s.product.ID.String()+"/price", map[string]any{
		"heaterId":       s.heater,
		"heaterOptions":  map[string]string{"stones": "Premium"},
		"installationId": s.diy,
		"woodTypeId":     s.cedar,
		"addOnIds":       []uuid.UUID{s.lights},
	})
	require.Equal(t, http.StatusOK, w.Code)

	price := out["data"].(map[string]any)
	assert.Equal(t, 5650.0, price["subtotal"])
	assert.Equal(t, 350.0, price["delivery"])
	assert.Equal(t, 6000.0, price["total"])
	assert.Len(t, price["lines"], 7)
}

func TestPriceConfiguration_StaleIDsContributeNothing(t *testing.T) {
	s := newSauna()
	r, _ := setup(t, s)

	w, out := do(r, http.MethodPost, "/store/products/"+s.product.ID.String()+"/price", map[string]any{
		"heaterId":      uuid.New(),
		"heaterOptions": map[string]string{"stones": "Premium"},
		"addOnIds":      []uuid.UUID{uuid.New()},
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 4000.0, out["data"].(map[string]any)["total"])
}

func TestRequestProductQuote(t *testing.T) {
	s := newSauna()
	r, sender := setup(t, s)

	w, out := do(r, http.MethodPost, "/store/products/"+s.product.ID.String()+"/quote", map[string]any{
		"configuration": map[string]any{
			"heaterId":       s.heater,
			"heaterOptions":  map[string]string{"stones": "Premium"},
			"installationId": s.diy,
			"woodTypeId":     s.cedar,
			"addOnIds":       []uuid.UUID{s.lights},
		},
		"contact": map[string]any{"name": " Ada ", "email": "ada@example.com"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Email sent successfully!", out["message"])

	require.Len(t, sender.requests, 1)
	sent := sender.requests[0]
	assert.Equal(t, "Ada", sent.Name)
	assert.Equal(t, "Quote Request: Barrel Sauna 6ft", sent.Subject)
	assert.True(t, sent.IsCartQuote)
	assert.True(t, decimal.NewFromInt(6000).Equal(sent.CartSummary.Total))
	assert.Equal(t, "https://cdn.example.com/barrel.jpg", sent.CartItems[0].Image)
}

func TestRequestProductQuote_MissingContact(t *testing.T) {
	s := newSauna()
	r, sender := setup(t, s)

	w, out := do(r, http.MethodPost, "/store/products/"+s.product.ID.String()+"/quote", map[string]any{
		"contact": map[string]any{"name": "Ada", "email": "  "},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields.", out["message"])
	assert.Empty(t, sender.requests)
}

func TestBuildStorefrontOrderClause(t *testing.T) {
	assert.Equal(t, "p.base_price ASC", buildStorefrontOrderClause("price", "asc"))
	assert.Equal(t, "p.name DESC", buildStorefrontOrderClause("name", "bogus"))
	assert.Equal(t, "p.display_order ASC, p.name ASC", buildStorefrontOrderClause("; DROP TABLE", "asc"))
}
