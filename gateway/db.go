package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/imovelhub/agent_backend/config"
	"github.com/imovelhub/agent_backend/utils"
	"gorm.io/gorm"
)

// ErrStoreUnavailable is returned while the database connection is still
// being established. Callers keep whatever they are already displaying.
var ErrStoreUnavailable = errors.New("store unavailable")

// DB is the gorm-backed gateway. It emulates the hosted store's row-level
// security: selects carry no rows for a request without a session, mutations
// require one, and a per-owner redis list cache sits in front of the common
// refresh query (no-op when redis is not configured).
type DB struct {
	db *gorm.DB
}

// NewDB resolves the connection lazily so the gateway can be built before
// ConnectDatabaseWithRetry has finished.
func NewDB() *DB {
	return &DB{}
}

// NewDBWithConn pins the gateway to a specific connection.
func NewDBWithConn(db *gorm.DB) *DB {
	return &DB{db: db}
}

func (g *DB) conn() *gorm.DB {
	if g.db != nil {
		return g.db
	}
	return config.GetDB()
}

func (g *DB) Select(ctx context.Context, table string, filters map[string]any, orders []Order, dest any) error {
	userId, authenticated := utils.GetUserIdFromContext(ctx)
	if !authenticated {
		// RLS: no session, no rows. dest keeps its zero value (empty set).
		return nil
	}
	db := g.conn()
	if db == nil {
		return ErrStoreUnavailable
	}

	cacheable := len(filters) == 1 && filters["user_id"] == userId
	cacheKey := listCacheKey(table, userId)
	if cacheable {
		exists, err := config.GetRedisObject(cacheKey, dest)
		if err == nil && exists {
			return nil
		}
	}

	tx := db.WithContext(ctx).Table(table)
	for column, value := range filters {
		switch value.(type) {
		case []string:
			tx = tx.Where(column+" IN ?", value)
		default:
			tx = tx.Where(column+" = ?", value)
		}
	}
	for _, order := range orders {
		direction := "asc"
		if order.Desc {
			direction = "desc"
		}
		tx = tx.Order(order.Column + " " + direction)
	}
	if err := tx.Find(dest).Error; err != nil {
		return err
	}

	if cacheable {
		if err := config.SetRedisObject(cacheKey, dest, cacheLifespan()); err != nil {
			logCacheError("Select", table, err)
		}
	}
	return nil
}

// mutable guards every write: a session is required and the connection must
// be up.
func (g *DB) mutable(ctx context.Context) (*gorm.DB, error) {
	if _, authenticated := utils.GetUserIdFromContext(ctx); !authenticated {
		return nil, utils.ErrorNotAuthenticated
	}
	db := g.conn()
	if db == nil {
		return nil, ErrStoreUnavailable
	}
	return db, nil
}

func (g *DB) Insert(ctx context.Context, table string, row any) error {
	db, err := g.mutable(ctx)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Table(table).Create(row).Error; err != nil {
		return err
	}
	g.invalidate(ctx, table)
	return nil
}

func (g *DB) Update(ctx context.Context, table string, id string, cols map[string]any, model any) error {
	db, err := g.mutable(ctx)
	if err != nil {
		return err
	}
	tx := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(cols)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	g.invalidate(ctx, table)
	return nil
}

func (g *DB) Delete(ctx context.Context, table string, id string, model any) error {
	db, err := g.mutable(ctx)
	if err != nil {
		return err
	}
	tx := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	g.invalidate(ctx, table)
	return nil
}

func (g *DB) invalidate(ctx context.Context, table string) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return
	}
	if err := config.RemoveRedisKey(listCacheKey(table, userId)); err != nil {
		logCacheError("invalidate", table, err)
	}
}

func listCacheKey(table string, userId string) string {
	return fmt.Sprintf("rows:%s:%s", table, userId)
}

func cacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

func logCacheError(funcName string, table string, err error) {
	config.LogError(config.GetLogger(), "gateway", funcName, "redis list cache", table, err)
}
