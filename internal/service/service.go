package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/openshelf/library-service/internal/repository"
	"github.com/openshelf/library-service/pkg/auth"
)

type Service struct {
	log      *zap.Logger
	repo     repository.Repository
	tokenTTL time.Duration
}

func NewService(repo repository.Repository, cfg auth.Config, log *zap.Logger) *Service {
	ttl := time.Duration(cfg.TokenTTL) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		log:      log,
		repo:     repo,
		tokenTTL: ttl,
	}
}
