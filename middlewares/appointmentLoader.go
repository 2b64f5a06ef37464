package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/imovelhub/agent_backend/models"
	"gorm.io/gorm"
)

type appointmentReader struct {
	db *gorm.DB
}

func (r *appointmentReader) getAppointments(ctx context.Context, ids []string) []*dataloader.Result[*models.Appointment] {
	var results []models.Appointment
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error
	if err != nil {
		return handleError[*models.Appointment](len(ids), err)
	}

	return generateLoaderResults(results, ids)
}

func GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	loaders := For(ctx)
	return loaders.AppointmentLoader.Load(ctx, id)()
}

func GetAppointments(ctx context.Context, ids []string) ([]*models.Appointment, []error) {
	loaders := For(ctx)
	return loaders.AppointmentLoader.LoadMany(ctx, ids)()
}
