package handler

import (
	"net/http"

	"Brandi/config"
	"Brandi/middleware"
	"Brandi/pkg/context"
	"Brandi/pkg/response"
	"Brandi/service"
	"Brandi/types"

	"github.com/gin-gonic/gin"
)

type AdminProduct struct {
	Config         *config.Config
	UserService    service.IUserService
	CatalogService service.ICatalogService
}

func (a *AdminProduct) RegisterRouter(r gin.IRouter) {
	admin := r.Group("/admin/product",
		middleware.Auth([]byte(a.Config.Jwt.Secret)),
		middleware.RequireAdmin(a.UserService))

	admin.POST("", context.Wrap(a.Register))     // 商品注册
	admin.GET("", context.Wrap(a.List))          // 商品列表
	admin.GET("/colors", context.Wrap(a.Colors)) // 颜色
	admin.GET("/sizes", context.Wrap(a.Sizes))   // 尺码
	admin.GET("/main-categories", context.Wrap(a.MainCategories))
	admin.GET("/sub-categories/:mainCategoryID", context.Wrap(a.SubCategories))
	admin.GET("/:productID", context.Wrap(a.Detail))
	admin.PUT("/:productID", context.Wrap(a.Update))
	admin.DELETE("/:productID", context.Wrap(a.Delete))
}

func (a *AdminProduct) Register(c *gin.Context) error {
	var req types.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	resp, err := a.CatalogService.RegisterProduct(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	c.JSON(http.StatusCreated, response.Response{Data: resp})
	return nil
}

func (a *AdminProduct) Update(c *gin.Context) error {
	id, err := paramID(c, "productID", "INVALID_PRODUCT_ID")
	if err != nil {
		return err
	}
	var req types.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	resp, err := a.CatalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (a *AdminProduct) Delete(c *gin.Context) error {
	id, err := paramID(c, "productID", "INVALID_PRODUCT_ID")
	if err != nil {
		return err
	}
	if err := a.CatalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		return err
	}
	c.Status(http.StatusNoContent)
	return nil
}

func (a *AdminProduct) List(c *gin.Context) error {
	var req types.AdminProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	resp, err := a.CatalogService.ListProducts(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (a *AdminProduct) Detail(c *gin.Context) error {
	id, err := paramID(c, "productID", "INVALID_PRODUCT_ID")
	if err != nil {
		return err
	}
	detail, err := a.CatalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, detail)
	return nil
}

func (a *AdminProduct) Colors(c *gin.Context) error {
	items, err := a.CatalogService.Colors(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (a *AdminProduct) Sizes(c *gin.Context) error {
	items, err := a.CatalogService.Sizes(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (a *AdminProduct) MainCategories(c *gin.Context) error {
	items, err := a.CatalogService.MainCategories(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (a *AdminProduct) SubCategories(c *gin.Context) error {
	id, err := paramID(c, "mainCategoryID", "INVALID_MAIN_CATEGORY_ID")
	if err != nil {
		return err
	}
	items, err := a.CatalogService.SubCategories(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}
