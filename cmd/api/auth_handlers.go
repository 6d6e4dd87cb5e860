package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/tienda-ecom/internal/httpx"
	"github.com/MikeMC777/tienda-ecom/internal/user"
)

// loginHandler godoc
// @Summary      Iniciar sesión
// @Description  Exchanges email and password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      user.LoginRequest  true  "credentials"
// @Success      200   {object}  identity.Token
// @Failure      400   {object}  httpx.ErrorBody
// @Failure      401   {object}  httpx.ErrorBody
// @Router       /auth/login [post]
func loginHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := httpx.BindJSON(c, &req); err != nil {
			httpx.Fail(c, err)
			return
		}
		tok, err := users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, tok)
	}
}

// registerHandler godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      user.RegisterRequest  true  "new account"
// @Success      201   {object}  user.User
// @Failure      400   {object}  httpx.ErrorBody
// @Failure      409   {object}  httpx.ErrorBody
// @Router       /auth/register [post]
func registerHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.RegisterRequest
		if err := httpx.BindJSON(c, &req); err != nil {
			httpx.Fail(c, err)
			return
		}
		u, err := users.Register(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// meHandler godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  user.User
// @Failure      401  {object}  httpx.ErrorBody
// @Router       /auth/me [get]
func meHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _ := httpx.Identity(c)
		u, err := users.Get(c.Request.Context(), uid)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// listUsersHandler godoc
// @Summary      Listar usuarios (ADMIN)
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   user.User
// @Failure      403  {object}  httpx.ErrorBody
// @Router       /auth/ [get]
func listUsersHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.List(c.Request.Context())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// updateProfileHandler godoc
// @Summary      Actualizar perfil propio
// @Description  Partial update; omitted fields keep their value
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      user.UpdateProfileRequest  true  "fields to change"
// @Success      200   {object}  user.User
// @Failure      400   {object}  httpx.ErrorBody
// @Router       /auth/ [patch]
func updateProfileHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.UpdateProfileRequest
		if err := httpx.BindJSON(c, &req); err != nil {
			httpx.Fail(c, err)
			return
		}
		uid, _ := httpx.Identity(c)
		u, err := users.UpdateProfile(c.Request.Context(), uid, req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
