package server

import (
	"Brandi/handler"
)

type Handlers struct {
	User         *handler.User
	AdminUser    *handler.AdminUser
	Product      *handler.Product
	AdminProduct *handler.AdminProduct
	Order        *handler.Order
	AdminOrder   *handler.AdminOrder
}
