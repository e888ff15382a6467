package handler

import (
	"Brandi/config"
	"Brandi/pkg/context"
	"Brandi/pkg/response"
	"Brandi/service"
	"Brandi/types"

	"github.com/gin-gonic/gin"
)

type Product struct {
	Config         *config.Config
	ProductService service.IProductService
}

func (p *Product) RegisterRouter(r gin.IRouter) {
	products := r.Group("/products")
	products.GET("", context.Wrap(p.List))
	products.GET("/:productID", context.Wrap(p.Detail))
	products.GET("/:productID/options", context.Wrap(p.OptionSizes)) // 某颜色下有货的尺码
}

func (p *Product) List(c *gin.Context) error {
	items, err := p.ProductService.ListProducts(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (p *Product) Detail(c *gin.Context) error {
	id, err := paramID(c, "productID", "INVALID_PRODUCT_ID")
	if err != nil {
		return err
	}
	detail, err := p.ProductService.GetProduct(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, detail)
	return nil
}

func (p *Product) OptionSizes(c *gin.Context) error {
	id, err := paramID(c, "productID", "INVALID_PRODUCT_ID")
	if err != nil {
		return err
	}
	var req types.OptionSizesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	sizes, err := p.ProductService.ListSizes(c.Request.Context(), id, req.ColorID)
	if err != nil {
		return err
	}
	response.Success(c, sizes)
	return nil
}
