package handler

import (
	"net/http"

	"storefront/internal/delivery/web/response"
	"storefront/internal/delivery/web/validator"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

type registerForm struct {
	Username  string `form:"username"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
}

// AuthHandler serves login, registration and logout.
type AuthHandler struct {
	uc       usecase.UserUsecase
	tokenSvc service.TokenService
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.UserUsecase, tokenSvc service.TokenService) *AuthHandler {
	return &AuthHandler{uc: uc, tokenSvc: tokenSvc}
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return response.Render(c, http.StatusOK, "login", "Log in", &formView{Next: c.QueryParam("next")})
}

// Login checks the credentials and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{Username: form.Username, Password: form.Password})
	if formErr, ok := errors.Find[*usecase.FormError](err); ok {
		return response.Render(c, http.StatusOK, "login", "Log in", &formView{
			Values: map[string]string{"username": form.Username},
			Errors: map[string]string{formErr.Field: formErr.Message},
			Next:   form.Next,
		})
	}
	if err != nil {
		return errors.WithStack(err)
	}

	response.SetSession(c, output.Token, h.tokenSvc.SessionDuration())

	return c.Redirect(http.StatusFound, response.SafeNext(form.Next))
}

// RegisterPage renders the sign-up form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return response.Render(c, http.StatusOK, "register", "Sign up", &formView{})
}

// Register creates the account and logs the new user in.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}

	values := map[string]string{"username": form.Username, "email": form.Email}
	if err := c.Validate(&form); err != nil {
		fieldErrors := map[string]string{}
		for field := range validator.FieldErrors(err) {
			fieldErrors[field] = "Enter a valid " + field + "."
		}

		return response.Render(c, http.StatusOK, "register", "Sign up", &formView{
			Values: values,
			Errors: fieldErrors,
		})
	}

	ctx := c.Request().Context()
	_, err := h.uc.Register(ctx, &usecase.RegisterInput{
		Username:  form.Username,
		Email:     form.Email,
		Password1: form.Password1,
		Password2: form.Password2,
	})
	if formErr, ok := errors.Find[*usecase.FormError](err); ok {
		return response.Render(c, http.StatusOK, "register", "Sign up", &formView{
			Values: values,
			Errors: map[string]string{formErr.Field: formErr.Message},
		})
	}
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(ctx, &usecase.LoginInput{Username: form.Username, Password: form.Password1})
	if err != nil {
		return errors.WithStack(err)
	}
	response.SetSession(c, output.Token, h.tokenSvc.SessionDuration())

	return response.Redirect(c, usecase.Success("Your account was created.", usecase.RouteCatalog))
}

// Logout ends the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	response.ClearSession(c)

	return response.Redirect(c, usecase.Info("You have been logged out.", usecase.RouteLogin))
}
