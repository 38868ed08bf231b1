package migrations

import (
	"github.com/Rakhulsr/go-catalog/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.PersonalAccessToken{}, &models.Category{}, &models.Provider{}, &models.Address{}, &models.Product{})
}
