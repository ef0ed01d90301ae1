package config

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wellbase/wellbase/models"
)

// RunAllSeeding runs all seeding operations in the correct order
func RunAllSeeding(log *zap.Logger) error {
	log.Info("starting database seeding")

	if err := SeedStratUnits(log); err != nil {
		return err
	}
	if err := SeedUsers(log); err != nil {
		return err
	}

	log.Info("database seeding complete")
	return nil
}

// SeedStratUnits creates the stratigraphic units tops are usually picked
// against, so fresh databases can take tops loads without inventing units
// on the fly.
func SeedStratUnits(log *zap.Logger) error {
	names := []string{
		"Upper Spraberry",
		"Lower Spraberry",
		"Dean",
		"Wolfcamp A",
		"Wolfcamp B",
		"Wolfcamp C",
		"Wolfcamp D",
		"Strawn",
		"Atoka",
		"Mississippian Lime",
	}

	created := 0
	for _, name := range names {
		var existing models.StratUnit
		err := DB.Where("name = ?", name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := DB.Create(&models.StratUnit{Name: name}).Error; err != nil {
				log.Error("error creating strat unit", zap.String("name", name), zap.Error(err))
				continue
			}
			created++
		} else if err != nil {
			return err
		}
	}
	log.Info("strat units seeded", zap.Int("created", created), zap.Int("total", len(names)))
	return nil
}

// SeedUsers creates the default users for a fresh install.
func SeedUsers(log *zap.Logger) error {
	// Default password for all seeded users (should be changed on first login)
	defaultPassword := "Welcome@123"
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	usersToSeed := []struct {
		Name  string
		Email string
		Role  string
	}{
		{Name: "Site Admin", Email: "admin@wellbase.local", Role: models.RoleAdmin},
		{Name: "Staff Geologist", Email: "geologist@wellbase.local", Role: models.RoleGeologist},
		{Name: "Drilling Engineer", Email: "engineer@wellbase.local", Role: models.RoleEngineer},
		{Name: "Reservoir Viewer", Email: "viewer@wellbase.local", Role: models.RoleViewer},
	}

	for _, userData := range usersToSeed {
		var existing models.User
		err := DB.Where("email = ?", userData.Email).First(&existing).Error
		if err == nil {
			log.Info("user already exists", zap.String("email", userData.Email))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		user := models.User{
			Name:         userData.Name,
			Email:        userData.Email,
			PasswordHash: string(passwordHash),
			Role:         userData.Role,
			IsActive:     true,
		}
		if err := DB.Create(&user).Error; err != nil {
			log.Error("error creating user", zap.String("email", userData.Email), zap.Error(err))
			continue
		}
		log.Info("created user", zap.String("email", userData.Email), zap.String("role", userData.Role))
	}

	log.Info("default credentials seeded, change them immediately",
		zap.String("admin", "admin@wellbase.local / "+defaultPassword))
	return nil
}
