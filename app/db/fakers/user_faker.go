package fakers

import (
	"log"

	"github.com/go-faker/faker/v4"
	"gorm.io/gorm"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/models"
)

func UserFaker(db *gorm.DB) *models.User {
	password, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatal("Failed to hash faker password:", err)
	}

	return &models.User{
		Name:     faker.Name(),
		Email:    faker.Email(),
		Phone:    faker.Phonenumber(),
		Password: password,
		Role:     models.RoleCustomer,
	}
}
