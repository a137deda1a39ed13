// File: database/repository/settings/interface.go
package settingsRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"medbuddy/database"
	"medbuddy/models"
)

// SettingsRepository manages the admin settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.AdminSettings, error)
	Update(ctx context.Context, settings *models.AdminSettings) error
}

type mongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo constructs a new MongoDB SettingsRepository.
func NewMongoSettingsRepo() SettingsRepository {
	return &mongoSettingsRepo{
		coll: database.DB().Collection("settings"),
	}
}
