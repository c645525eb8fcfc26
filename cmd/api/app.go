package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/company-directory-go/internal/config"
	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
	"github.com/cmlabs-hris/company-directory-go/internal/domain/employee"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/database"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/storage"
	"github.com/cmlabs-hris/company-directory-go/internal/repository/memory"
	"github.com/cmlabs-hris/company-directory-go/internal/repository/postgresql"
)

// stores holds the repositories selected by STORE_DRIVER. db is nil for the
// memory driver.
type stores struct {
	db        *database.DB
	companies company.CompanyRepository
	employees employee.EmployeeRepository
}

func (s *stores) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Database.Driver == config.StoreDriverMemory {
		slog.Warn("using in-memory store, data is lost on exit")
		return &stores{
			companies: memory.NewCompanyRepository(),
			employees: memory.NewEmployeeRepository(),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &stores{
		db:        db,
		companies: postgresql.NewCompanyRepository(db),
		employees: postgresql.NewEmployeeRepository(db),
	}, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	if cfg.Database.Driver != config.StoreDriverPostgres {
		return nil, fmt.Errorf("STORE_DRIVER=%s has no database", cfg.Database.Driver)
	}
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// openStorage returns the configured file storage and, for local storage,
// the directory the router serves.
func openStorage(ctx context.Context, cfg *config.Config) (storage.FileStorage, string, error) {
	switch cfg.Storage.Type {
	case config.StorageTypeLocal:
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return local, local.BasePath(), nil
	case config.StorageTypeMinIO:
		minio, err := storage.NewMinIOStorage(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
			PublicURL: cfg.MinIO.PublicURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize minio storage: %w", err)
		}
		return minio, "", nil
	default:
		return nil, "", fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
