// Command seed prepares a database for local development: it migrates the
// schema and upserts the demo accounts and a small product catalog.
package main

import (
	"context"
	"log/slog"
	"os"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type seedParams struct {
	fx.In
	fx.Shutdowner

	Logger    *slog.Logger
	DB        *gorm.DB
	Hasher    service.PasswordHasher
	TxManager repository.TransactionManager
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			auth.NewBcryptHasher,
			postgres.NewTransactionManager,
		),
		fx.Invoke(runSeed),
	).Run()
}

func runSeed(ctx context.Context, params seedParams) {
	if err := seed(ctx, params); err != nil {
		params.Logger.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}

	params.Logger.Info("Seeding completed",
		slog.String("adminEmail", "admin@test.com"),
		slog.String("userEmail", "user@test.com"))

	if err := params.Shutdown(); err != nil {
		params.Logger.Error("Failed to shut down", slog.Any("error", err))
	}
}

func seed(ctx context.Context, params seedParams) error {
	if err := params.DB.WithContext(ctx).AutoMigrate(
		&model.UserModel{},
		&model.ProductModel{},
		&model.CartModel{},
		&model.CartLineModel{},
		&model.OrderModel{},
		&model.OrderLineModel{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return params.TxManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := seedUsers(ctx, factory.NewUserRepository(), params.Hasher); err != nil {
			return err
		}

		return seedProducts(ctx, factory.NewProductRepository())
	})
}

func seedUsers(ctx context.Context, userRepo repository.UserRepository, hasher service.PasswordHasher) error {
	accounts := []struct {
		name     string
		email    string
		password string
		role     entity.Role
	}{
		{name: "Admin User", email: "admin@test.com", password: "admin123", role: entity.RoleAdmin},
		{name: "Test User", email: "user@test.com", password: "user123", role: entity.RoleUser},
	}

	for _, account := range accounts {
		if _, err := userRepo.FindByEmail(ctx, account.email); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrapf(err, "failed to look up %s", account.email)
		}

		hash, err := hasher.Hash(account.password)
		if err != nil {
			return errors.Wrapf(err, "failed to hash password for %s", account.email)
		}

		user := &entity.User{
			Name:         account.name,
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrapf(err, "failed to create %s", account.email)
		}
	}

	return nil
}

func seedProducts(ctx context.Context, productRepo repository.ProductRepository) error {
	existing, err := productRepo.List(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list products")
	}
	if len(existing) > 0 {
		return nil
	}

	products := []*entity.Product{
		{
			Name:        "Wireless Mouse",
			Description: "Compact two-button mouse with a USB receiver",
			Price:       decimal.NewFromFloat(24.99),
			Stock:       120,
		},
		{
			Name:        "Mechanical Keyboard",
			Description: "Tenkeyless keyboard with tactile switches",
			Price:       decimal.NewFromFloat(89.90),
			Stock:       45,
		},
		{
			Name:        "USB-C Hub",
			Description: "Seven-port hub with HDMI and card reader",
			Price:       decimal.NewFromFloat(39.50),
			Stock:       80,
		},
		{
			Name:        "Laptop Stand",
			Description: "Adjustable aluminium stand",
			Price:       decimal.NewFromFloat(31.00),
			Stock:       60,
		},
	}

	for _, product := range products {
		if err := productRepo.Create(ctx, product); err != nil {
			return errors.Wrapf(err, "failed to create product %s", product.Name)
		}
	}

	return nil
}
