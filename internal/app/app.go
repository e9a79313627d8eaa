// Package app wires configuration, storage and services into a runnable
// API. The server binary and the operator CLI share it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/mailer"
	"yamdb/internal/microservices/http-api/handler"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"
	"yamdb/internal/middleware/auth"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Repositories struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Genres     repository.GenreRepository
	Titles     repository.TitleRepository
	Reviews    repository.ReviewRepository
	Comments   repository.CommentRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:      repository.NewUserRepository(db),
		Categories: repository.NewCategoryRepository(db),
		Genres:     repository.NewGenreRepository(db),
		Titles:     repository.NewTitleRepository(db),
		Reviews:    repository.NewReviewRepository(db),
		Comments:   repository.NewCommentRepository(db),
	}
}

// NewServices builds every service on top of repos. sender delivers
// confirmation codes.
func NewServices(cfg *config.Config, repos Repositories, sender mailer.Sender) (handler.Services, error) {
	codes, err := auth.NewCodeGenerator(cfg.JWTSecret, cfg.ConfirmationCodeTTL)
	if err != nil {
		return handler.Services{}, err
	}
	return handler.Services{
		Auth:     service.NewAuthService(repos.Users, codes, sender, cfg),
		Users:    service.NewUserService(repos.Users),
		Category: service.NewCategoryService(repos.Categories),
		Genre:    service.NewGenreService(repos.Genres),
		Title:    service.NewTitleService(repos.Titles, repos.Categories, repos.Genres),
		Review:   service.NewReviewService(repos.Reviews, repos.Titles),
		Comment:  service.NewCommentService(repos.Comments, repos.Reviews),
	}, nil
}

// OpenDatabase connects and, when DB_AUTO_MIGRATE is set, migrates.
func OpenDatabase(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := database.OpenGorm(cfg, log)
	if err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db, log); err != nil {
			database.Close(db)
			return nil, err
		}
	}
	return db, nil
}

// NewMailSender returns the Redis outbox. In development an unreachable
// Redis falls back to logging the mail; elsewhere it is an error. The
// returned client is nil when the fallback is used.
func NewMailSender(ctx context.Context, cfg *config.Config, log *slog.Logger) (mailer.Sender, *redis.Client, error) {
	opts, err := cfg.RedisOptions()
	if err != nil {
		return nil, nil, err
	}
	rdb, err := mailer.NewRedisClient(ctx, opts)
	if err != nil {
		if cfg.IsDevelopment() {
			log.Warn("redis_unavailable_logging_mail", "error", err)
			return mailer.LogSender{Logger: log}, nil, nil
		}
		return nil, nil, fmt.Errorf("mail outbox: %w", err)
	}
	return mailer.NewRedisOutbox(rdb, cfg.MailQueueKey), rdb, nil
}
