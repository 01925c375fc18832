package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/mobstermerch/storefront/app/db/fakers"
	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/models"
)

const (
	adminEmail    = "admin@mobstermerch.local"
	adminPassword = "changeme-admin"
)

var seedCategories = []string{"Tees", "Hoodies", "Posters", "Accessories"}

// DBSeed provisions the admin account, the starter categories and a
// batch of fake products. Safe to run more than once.
func DBSeed(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}

	categories, err := seedCategoriesAndProducts(db)
	if err != nil {
		return err
	}

	log.Printf("INFO: seeder: done (%d categories)", len(categories))
	return nil
}

func seedAdmin(db *gorm.DB) error {
	password, err := helpers.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Store Admin",
		Email:    adminEmail,
		Password: password,
		Role:     models.RoleAdmin,
	}
	if err := db.FirstOrCreate(admin, "email = ?", adminEmail).Error; err != nil {
		return err
	}

	log.Printf("INFO: seeder: admin user ready (%s)", adminEmail)
	return nil
}

func seedCategoriesAndProducts(db *gorm.DB) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(seedCategories))

	for _, name := range seedCategories {
		category := models.Category{
			Name: name,
			Slug: helpers.Slugify(name),
		}
		if err := db.FirstOrCreate(&category, "slug = ?", category.Slug).Error; err != nil {
			return nil, err
		}
		categories = append(categories, category)

		for i := 0; i < 5; i++ {
			product := fakers.ProductFaker(db, &category)
			if err := db.Create(product).Error; err != nil {
				return nil, err
			}
		}
	}

	return categories, nil
}
