package initialize

import (
	"context"
	"errors"
	"strings"

	"kardetailing/config"
	"kardetailing/internal/database"
	. "kardetailing/internal/models"
	"kardetailing/internal/repositories"
	"kardetailing/internal/services"
	"kardetailing/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

func InitializeTables(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	users := repositories.NewUserRepository(db)
	if err := initializeAdmin(context.Background(), users, config, log); err != nil {
		return log.Err("failed to initialize admin account", err)
	}

	log.Info("Table initialization complete")
	return nil
}

// initializeAdmin makes sure ADMIN_EMAIL names an administrator. An existing
// account is promoted and keeps its password; otherwise one is created from
// ADMIN_PASSWORD. Both paths go through the repository so a cached copy of
// the account never outlives the change.
func initializeAdmin(
	ctx context.Context,
	users repositories.UserRepository,
	config config.Config,
	log logger.Logger,
) error {
	log = log.Function("initializeAdmin")

	email := strings.TrimSpace(config.AdminEmail)
	if email == "" {
		log.Info("ADMIN_EMAIL not set, skipping admin bootstrap")
		return nil
	}

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsAdmin {
			log.Debug("Admin already exists", "email", email)
			return nil
		}
		log.Info("Promoting existing account to admin", "email", email)
		if err := users.SetAdmin(ctx, existing.ID, true); err != nil {
			return log.Err("failed to promote admin", err, "email", email)
		}
		return nil
	case !errors.Is(err, types.ErrNotFound):
		return log.Err("failed to look up admin", err, "email", email)
	}

	if config.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD not set, cannot create admin account", "email", email)
		return nil
	}

	hash, err := services.NewPasswordService(config.BcryptCost).Hash(config.AdminPassword)
	if err != nil {
		return log.Err("failed to hash admin password", err)
	}

	admin := &User{
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
		Name:         "Administrator",
	}

	log.Info("Creating admin account", "email", email)
	if err := users.Create(ctx, admin); err != nil {
		return log.Err("failed to create admin", err, "email", email)
	}

	return nil
}
