package middlewares

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"
	"github.com/imovelhub/agent_backend/config"
	"github.com/imovelhub/agent_backend/models"
	"gorm.io/gorm"
)

type ctxKey string

const (
	loadersKey = ctxKey("dataloaders")
)

// Loaders batch the linked-entity summary lookups behind the relationship
// joins (appointment->lead, proposal->lead+property, checkin->appointment),
// so a refresh that touches several caches in one request issues one query
// per linked table.
type Loaders struct {
	LeadLoader        *dataloader.Loader[string, *models.Lead]
	PropertyLoader    *dataloader.Loader[string, *models.Property]
	AppointmentLoader *dataloader.Loader[string, *models.Appointment]
}

// NewLoaders instantiates data loaders for the middleware
func NewLoaders(conn *gorm.DB) *Loaders {
	leadReader := &leadReader{db: conn}
	propertyReader := &propertyReader{db: conn}
	appointmentReader := &appointmentReader{db: conn}

	return &Loaders{
		LeadLoader:        dataloader.NewBatchedLoader(leadReader.getLeads, dataloader.WithWait[string, *models.Lead](time.Millisecond)),
		PropertyLoader:    dataloader.NewBatchedLoader(propertyReader.getProperties, dataloader.WithWait[string, *models.Property](time.Millisecond)),
		AppointmentLoader: dataloader.NewBatchedLoader(appointmentReader.getAppointments, dataloader.WithWait[string, *models.Appointment](time.Millisecond)),
	}
}

func LoaderMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := config.GetDB()
		if db == nil {
			// Store still connecting; joins fall back to direct gateway
			// selects for this request.
			c.Next()
			return
		}
		loader := NewLoaders(db)
		ctx := context.WithValue(c.Request.Context(), loadersKey, loader)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// For returns the request's loaders, or nil outside the HTTP path.
func For(ctx context.Context) *Loaders {
	loaders, _ := ctx.Value(loadersKey).(*Loaders)
	return loaders
}

func handleError[T any](itemsLength int, err error) []*dataloader.Result[T] {
	result := make([]*dataloader.Result[T], itemsLength)
	for i := 0; i < itemsLength; i++ {
		result[i] = &dataloader.Result[T]{Error: err}
	}
	return result
}

func generateLoaderResults[T interface{ EntityID() string }](results []T, ids []string) []*dataloader.Result[*T] {
	resultMap := make(map[string]*T, len(results))
	for i := range results {
		resultMap[results[i].EntityID()] = &results[i]
	}

	loaderResults := make([]*dataloader.Result[*T], 0, len(ids))
	for _, id := range ids {
		loaderResults = append(loaderResults, &dataloader.Result[*T]{Data: resultMap[id]})
	}
	return loaderResults
}
