package fakers

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/models"
)

func ProductFaker(db *gorm.DB, category *models.Category) *models.Product {
	name := faker.Word() + " " + faker.Word()

	// Random suffix keeps the unique slug index happy across runs.
	slugText := helpers.Slugify(name + "-" + uuid.NewString()[:6])

	price := decimal.NewFromInt(int64(rand.Intn(1900) + 100))

	var categoryID *string
	if category != nil {
		categoryID = &category.ID
	}

	return &models.Product{
		Name:        name,
		Slug:        slugText,
		Description: faker.Sentence(),
		Price:       price,
		Stock:       rand.Intn(50) + 1,
		CategoryID:  categoryID,
		ImageURL:    "/uploads/products/placeholder.jpg",
	}
}
