package catalog_cache

import (
	"sync"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/google/uuid"
)

const TTL = 5 * time.Minute

// ── Configurable products (options, heaters and images preloaded) ────────────
// Cached values are shared between requests and must be treated as read-only.

type productEntry struct {
	product   *models.Product
	fetchedAt time.Time
}

var (
	productMu    sync.RWMutex
	productCache = map[uuid.UUID]productEntry{}
)

func GetProduct(id uuid.UUID) (*models.Product, bool) {
	productMu.RLock()
	defer productMu.RUnlock()
	entry, ok := productCache[id]
	if ok && time.Since(entry.fetchedAt) < TTL {
		return entry.product, true
	}
	return nil, false
}

func SetProduct(p *models.Product) {
	productMu.Lock()
	defer productMu.Unlock()
	productCache[p.ID] = productEntry{product: p, fetchedAt: time.Now()}
}

// ── Heater list, keyed by type filter ("" for all) ───────────────────────────

type heaterEntry struct {
	data      []models.Heater
	fetchedAt time.Time
}

var (
	heaterMu    sync.RWMutex
	heaterCache = map[string]heaterEntry{}
)

func GetHeaters(heaterType string) ([]models.Heater, bool) {
	heaterMu.RLock()
	defer heaterMu.RUnlock()
	entry, ok := heaterCache[heaterType]
	if ok && time.Since(entry.fetchedAt) < TTL {
		return entry.data, true
	}
	return nil, false
}

func SetHeaters(heaterType string, data []models.Heater) {
	heaterMu.Lock()
	defer heaterMu.Unlock()
	heaterCache[heaterType] = heaterEntry{data: data, fetchedAt: time.Now()}
}
