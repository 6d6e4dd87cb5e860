package main

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/httpx"
	"github.com/MikeMC777/tienda-ecom/internal/product"
)

const maxSpecsBytes = 64 << 10

// listByCategoryHandler godoc
// @Summary      Productos por categoría
// @Description  Ranked by 0.7*views + 0.3*average_rating, highest first
// @Tags         productos
// @Produce      json
// @Param        categoria_id  path      string  true   "category id"
// @Param        page          query     int     false  "page (default 1)"
// @Param        page_size     query     int     false  "page size (default 10, max 100); alias per_page"
// @Success      200           {object}  product.Page
// @Failure      400           {object}  httpx.ErrorBody
// @Router       /productos/por_categoria/{categoria_id} [get]
func listByCategoryHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		size := c.Query("page_size")
		if size == "" {
			size = c.Query("per_page")
		}
		page, pageSize, err := product.ParsePaging(c.Query("page"), size)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		out, err := catalog.ListByCategory(c.Request.Context(), c.Param("categoria_id"), page, pageSize)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// getProductHandler godoc
// @Summary  Detalle de producto
// @Tags     productos
// @Produce  json
// @Param    id   path      string  true  "product id"
// @Success  200  {object}  product.Detail
// @Failure  404  {object}  httpx.ErrorBody
// @Router   /productos/{id} [get]
func getProductHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := catalog.Detail(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// createProductHandler godoc
// @Summary      Crear producto (ADMIN)
// @Description  Multipart form. Images must be png, jpg, jpeg or gif.
// @Tags         productos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name               formData  string  true   "name"
// @Param        price              formData  string  true   "price"
// @Param        stock              formData  int     false  "stock"
// @Param        weight             formData  string  false  "weight in kg"
// @Param        short_description  formData  string  false  "short description"
// @Param        description        formData  string  false  "description"
// @Param        category_id        formData  string  false  "category id"
// @Param        slug               formData  string  false  "slug"
// @Param        specifications     formData  file    false  "specifications JSON"
// @Param        main_image         formData  file    false  "main image"
// @Param        images             formData  file    false  "gallery images"
// @Success      201                {object}  product.Product
// @Failure      400                {object}  httpx.ErrorBody
// @Router       /productos/ [post]
func createProductHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			httpx.Fail(c, apperr.Validation("expected a multipart form: %v", err))
			return
		}
		in, err := decodeCreateForm(form)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		p, err := catalog.Create(c.Request.Context(), in)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func formValue(form *multipart.Form, keys ...string) string {
	for _, k := range keys {
		if v := form.Value[k]; len(v) > 0 && strings.TrimSpace(v[0]) != "" {
			return strings.TrimSpace(v[0])
		}
	}
	return ""
}

func formFiles(form *multipart.Form, keys ...string) []*multipart.FileHeader {
	for _, k := range keys {
		if fs := form.File[k]; len(fs) > 0 {
			return fs
		}
	}
	return nil
}

func toUpload(fh *multipart.FileHeader) product.Upload {
	return product.Upload{
		Filename: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func decodeCreateForm(form *multipart.Form) (product.CreateInput, error) {
	in := product.CreateInput{
		Name:             formValue(form, "name", "nombre"),
		Slug:             formValue(form, "slug"),
		ShortDescription: formValue(form, "short_description", "descripcion_corta"),
		Description:      formValue(form, "description", "descripcion"),
		CategoryID:       formValue(form, "category_id", "categoria_id"),
	}
	if in.Name == "" {
		return in, apperr.Validation("name is required")
	}

	raw := formValue(form, "price", "precio")
	if raw == "" {
		return in, apperr.Validation("price is required")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return in, apperr.Validation("price must be a decimal number")
	}
	in.Price = price

	if raw := formValue(form, "stock"); raw != "" {
		if in.Stock, err = strconv.Atoi(raw); err != nil {
			return in, apperr.Validation("stock must be an integer")
		}
	}
	if raw := formValue(form, "weight", "weight_kg", "peso"); raw != "" {
		w, err := decimal.NewFromString(raw)
		if err != nil {
			return in, apperr.Validation("weight must be a decimal number")
		}
		in.WeightKg = &w
	}

	if fs := formFiles(form, "specifications", "caracteristicas"); len(fs) > 0 {
		f, err := fs[0].Open()
		if err != nil {
			return in, apperr.Wrap(apperr.KindInternal, err, "open specifications")
		}
		in.Specifications, err = io.ReadAll(io.LimitReader(f, maxSpecsBytes))
		_ = f.Close()
		if err != nil {
			return in, apperr.Wrap(apperr.KindInternal, err, "read specifications")
		}
	} else {
		in.Specifications = []byte(formValue(form, "specifications", "caracteristicas"))
	}

	if fs := formFiles(form, "main_image", "imagen_principal"); len(fs) > 0 {
		u := toUpload(fs[0])
		in.MainImage = &u
	}
	for _, fh := range formFiles(form, "images", "imagenes") {
		in.Images = append(in.Images, toUpload(fh))
	}
	return in, nil
}

// updateProductHandler godoc
// @Summary      Actualizar producto (ADMIN)
// @Description  Partial update; only supplied fields change
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "product id"
// @Param        body  body      product.UpdateProductRequest  true  "fields to change"
// @Success      200   {object}  product.Product
// @Failure      400   {object}  httpx.ErrorBody
// @Failure      404   {object}  httpx.ErrorBody
// @Router       /productos/{id} [patch]
func updateProductHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.UpdateProductRequest
		if err := httpx.BindJSON(c, &req); err != nil {
			httpx.Fail(c, err)
			return
		}
		p, err := catalog.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// deleteProductHandler godoc
// @Summary   Eliminar producto (ADMIN)
// @Tags      productos
// @Security  BearerAuth
// @Param     id  path  string  true  "product id"
// @Success   204
// @Failure   404  {object}  httpx.ErrorBody
// @Failure   409  {object}  httpx.ErrorBody
// @Router    /productos/{id} [delete]
func deleteProductHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// listReviewsHandler godoc
// @Summary  Reseñas de un producto
// @Tags     productos
// @Produce  json
// @Param    id   path     string  true  "product id"
// @Success  200  {array}  product.Review
// @Router   /productos/{id}/resenas [get]
func listReviewsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := catalog.Reviews(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// addReviewHandler godoc
// @Summary   Publicar reseña
// @Tags      productos
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string                 true  "product id"
// @Param     body  body      product.ReviewRequest  true  "review"
// @Success   201   {object}  product.Review
// @Failure   400   {object}  httpx.ErrorBody
// @Router    /productos/{id}/resenas [post]
func addReviewHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.ReviewRequest
		if err := httpx.BindJSON(c, &req); err != nil {
			httpx.Fail(c, err)
			return
		}
		uid, _ := httpx.Identity(c)
		rv, err := catalog.AddReview(c.Request.Context(), c.Param("id"), uid, req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, rv)
	}
}
