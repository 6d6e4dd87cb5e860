package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/tienda-ecom/internal/category"
	"github.com/MikeMC777/tienda-ecom/internal/httpx"
)

// listCategoriesHandler godoc
// @Summary  Listar categorías
// @Tags     categorias
// @Produce  json
// @Success  200  {array}  category.Category
// @Router   /categorias/ [get]
func listCategoriesHandler(cats categoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := cats.List(c.Request.Context())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// getCategoryHandler godoc
// @Summary  Obtener categoría
// @Tags     categorias
// @Produce  json
// @Param    id   path      string  true  "category id"
// @Success  200  {object}  category.Category
// @Failure  404  {object}  httpx.ErrorBody
// @Router   /categorias/{id} [get]
func getCategoryHandler(cats categoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := cats.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// createCategoryHandler godoc
// @Summary   Crear categoría (ADMIN)
// @Tags      categorias
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      category.CreateRequest  true  "category"
// @Success   201   {object}  category.Category
// @Failure   400   {object}  httpx.ErrorBody
// @Failure   409   {object}  httpx.ErrorBody
// @Router    /categorias/ [post]
func createCategoryHandler(cats categoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req category.CreateRequest
		if err := httpx.BindJSON(c, &req); err != nil {
			httpx.Fail(c, err)
			return
		}
		cat, err := cats.Create(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}
