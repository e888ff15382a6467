package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewProduct,
	NewProductOption,
	NewImage,
	NewReference,
	NewOrder,
)
