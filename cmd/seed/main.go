package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/Pacific-Tide/pacific-tide-backend/services"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main seeds heaters and products from the JSON exports under SEED_ASSETS_DIR (default ./assets).
// Usage: go run ./cmd/seed
// Rows that already exist (heater model, product name) are skipped, so the seeder can be re-run.
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("PACIFIC TIDE - Catalog Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()
	log.Println("✓ Connected to database")

	assets := os.Getenv("SEED_ASSETS_DIR")
	if assets == "" {
		assets = "assets"
	}

	s := &seeder{db: config.StoreGorm}
	if os.Getenv("SEED_UPLOAD_IMAGES") == "true" {
		cld, err := services.NewCloudinaryService(
			os.Getenv("CLOUDINARY_CLOUD_NAME"),
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
		)
		if err != nil {
			log.Fatalf("❌ Cloudinary is not configured: %v", err)
		}
		s.cld = cld
		log.Println("✓ Mirroring images to Cloudinary")
	}

	var heaters []seedHeater
	if err := readJSON(filepath.Join(assets, "heaters.json"), &heaters); err != nil {
		log.Fatalf("❌ Failed to load heaters: %v", err)
	}
	var extra []seedHeater
	if err := readJSON(filepath.Join(assets, "extra_heaters.json"), &extra); err == nil {
		log.Printf("🔥 Found %d extra heaters to add", len(extra))
		heaters = append(heaters, extra...)
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("❌ Failed to load extra heaters: %v", err)
	}

	var products []seedProduct
	if err := readJSON(filepath.Join(assets, "products.json"), &products); err != nil {
		log.Fatalf("❌ Failed to load products: %v", err)
	}

	fmt.Println("\n🔥 Seeding heaters...")
	s.seedHeaters(heaters)

	fmt.Println("\n📦 Seeding products...")
	s.seedProducts(products)

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("✅ Heaters: %d created, Products: %d created\n", s.heatersCreated, s.productsCreated)
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("Restart the API (or wait for the catalog cache to expire) to serve the new rows.")
}

type seeder struct {
	db  *gorm.DB
	cld *services.CloudinaryService

	heatersCreated  int
	productsCreated int
}

func (s *seeder) seedHeaters(heaters []seedHeater) {
	seen := map[string]bool{}
	for _, src := range heaters {
		h := buildHeater(src)
		if seen[h.Model] {
			log.Printf("⏭️  Skipping duplicate heater: %s", h.Model)
			continue
		}
		seen[h.Model] = true

		var count int64
		if err := s.db.Model(&models.Heater{}).Where("model = ?", h.Model).Count(&count).Error; err != nil {
			log.Printf("❌ Error checking heater %s: %v", h.Model, err)
			continue
		}
		if count > 0 {
			log.Printf("⏭️  Heater already exists: %s", h.Model)
			continue
		}

		s.mirrorImages(h.Images, "pacific-tide/heaters", slug(h.Model))
		if err := s.db.Create(&h).Error; err != nil {
			log.Printf("❌ Error creating heater %s: %v", h.Model, err)
			continue
		}
		s.heatersCreated++
		log.Printf("✅ Created heater: %s (%s)", h.Model, h.Type)
	}
}

func (s *seeder) seedProducts(products []seedProduct) {
	var heaters []models.Heater
	if err := s.db.Order("created_at ASC").Find(&heaters).Error; err != nil {
		log.Fatalf("❌ Failed to load heaters: %v", err)
	}
	log.Printf("🔥 Found %d heaters to link", len(heaters))

	for i, src := range products {
		p, err := buildProduct(src, i)
		if err != nil {
			log.Printf("❌ Error reading product %s: %v", src.Name, err)
			continue
		}

		var count int64
		if err := s.db.Model(&models.Product{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
			log.Printf("❌ Error checking product %s: %v", p.Name, err)
			continue
		}
		if count > 0 {
			log.Printf("⏭️  Product already exists: %s", p.Name)
			continue
		}

		keys, err := stoveKeys(src.StoveType)
		if err != nil {
			log.Printf("❌ Error reading heaters for %s: %v", p.Name, err)
			continue
		}
		for _, key := range keys {
			h, ok := matchHeater(heaters, key)
			if !ok {
				log.Printf("⚠️  Could not find heater: %s for product: %s", key, p.Name)
				continue
			}
			p.Heaters = append(p.Heaters, h)
		}
		p.Heaters = uniqueHeaters(p.Heaters)

		s.mirrorImages(p.Images, "pacific-tide/products", slug(p.Name))
		err = s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Omit("Heaters.*").Create(&p).Error
		})
		if err != nil {
			log.Printf("❌ Error creating product %s: %v", p.Name, err)
			continue
		}
		s.productsCreated++
		log.Printf("✅ Created product: %s (%s, %d options, %d heaters)", p.Name, p.Type, len(p.Options), len(p.Heaters))
	}
}

// mirrorImages re-hosts images on Cloudinary when enabled. Failed uploads keep the source URL.
func (s *seeder) mirrorImages(images []models.Image, folder, prefix string) {
	if s.cld == nil {
		return
	}
	for i := range images {
		if _, ok := services.PublicIDFromURL(images[i].URL); ok {
			continue
		}
		ctx, cancel := config.WithCustomTimeout(60 * time.Second)
		url, err := s.cld.UploadRemoteImage(ctx, images[i].URL, fmt.Sprintf("%s-%d", prefix, i+1), folder)
		cancel()
		if err != nil {
			log.Printf("⚠️  Keeping original image %s: %v", images[i].URL, err)
			continue
		}
		images[i].URL = url
	}
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
