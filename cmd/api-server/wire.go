//go:build wireinject
// +build wireinject

package main

import (
	"Brandi/config"
	"Brandi/dao"
	"Brandi/dao/cache"
	"Brandi/handler"
	"Brandi/pkg/client"
	"Brandi/pkg/clock"
	"Brandi/pkg/database"
	"Brandi/pkg/identity"
	"Brandi/pkg/server"
	"Brandi/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		clock.NewRealClock,
		identity.NewProvider,
		server.NewGinEngine,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.AdminUser), "*"),
		wire.Struct(new(handler.Product), "*"),
		wire.Struct(new(handler.AdminProduct), "*"),
		wire.Struct(new(handler.Order), "*"),
		wire.Struct(new(handler.AdminOrder), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil
}
