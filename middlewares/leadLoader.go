package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/imovelhub/agent_backend/models"
	"gorm.io/gorm"
)

type leadReader struct {
	db *gorm.DB
}

func (r *leadReader) getLeads(ctx context.Context, ids []string) []*dataloader.Result[*models.Lead] {
	var results []models.Lead
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.Lead](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetLead(ctx context.Context, id string) (*models.Lead, error) {
	loaders := For(ctx)
	return loaders.LeadLoader.Load(ctx, id)()
}

func GetLeads(ctx context.Context, ids []string) ([]*models.Lead, []error) {
	loaders := For(ctx)
	return loaders.LeadLoader.LoadMany(ctx, ids)()
}
