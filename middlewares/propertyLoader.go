package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/imovelhub/agent_backend/models"
	"gorm.io/gorm"
)

type propertyReader struct {
	db *gorm.DB
}

func (r *propertyReader) getProperties(ctx context.Context, ids []string) []*dataloader.Result[*models.Property] {
	var results []models.Property
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.Property](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetProperty(ctx context.Context, id string) (*models.Property, error) {
	loaders := For(ctx)
	return loaders.PropertyLoader.Load(ctx, id)()
}

func GetProperties(ctx context.Context, ids []string) ([]*models.Property, []error) {
	loaders := For(ctx)
	return loaders.PropertyLoader.LoadMany(ctx, ids)()
}
