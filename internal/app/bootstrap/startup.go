// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"time"

	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/normalize"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.BootstrapAdminEmail != "" {
		if err := ensureBootstrapAdmin(ctx, deps, appCfg.BootstrapAdminEmail, appCfg.BootstrapAdminName, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureBootstrapAdmin promotes the configured user to admin, or creates the
// account if it does not exist yet. A created account has no password; an
// operator sets one directly before first login.
func ensureBootstrapAdmin(ctx context.Context, deps DBDeps, email, name string, logger *zap.Logger) error {
	db := deps.MongoDatabase
	email = normalize.Email(email)

	users := userstore.New(db)
	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		if u.Role == models.RoleAdmin {
			return nil
		}
		_, err = db.Collection("users").UpdateByID(ctx, u.ID, bson.M{
			"$set": bson.M{"role": models.RoleAdmin, "updated_at": time.Now().UTC()},
		})
		if err != nil {
			return err
		}
		logger.Info("promoted existing user to admin",
			zap.String("email", email),
			zap.String("previous_role", u.Role),
		)
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Collection("users").InsertOne(ctx, models.User{
		ID:         primitive.NewObjectID(),
		FullName:   name,
		FullNameCI: text.Fold(name),
		Email:      email,
		Role:       models.RoleAdmin,
		Status:     models.UserStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return err
	}
	logger.Info("created bootstrap admin", zap.String("email", email))
	return nil
}
