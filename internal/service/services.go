package service

import (
	"github.com/mkhasanov/go-user-guard/internal/config"
	"github.com/mkhasanov/go-user-guard/internal/logger"
	"github.com/mkhasanov/go-user-guard/internal/revocation"
	"github.com/mkhasanov/go-user-guard/internal/store"
)

type Services struct {
	AuthService  AuthService
	AdminService AdminService
}

func NewServices(storages store.Storages, revoked revocation.Store, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:  NewAuthService(storages.UserRepository, revoked, cfg.Auth, logger),
		AdminService: NewAdminService(storages.UserRepository, logger),
	}
}
