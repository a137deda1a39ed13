// File: database/repository/settings/crud.go
package settingsRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medbuddy/models"
)

func (r *mongoSettingsRepo) Get(ctx context.Context) (*models.AdminSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var settings models.AdminSettings
	err := r.coll.FindOne(ctx, bson.M{"id": models.SettingsID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		// The singleton has not been written yet; return zero values.
		return &models.AdminSettings{ID: models.SettingsID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *mongoSettingsRepo) Update(ctx context.Context, settings *models.AdminSettings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	settings.ID = models.SettingsID
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": models.SettingsID}, settings, opts)
	return err
}
