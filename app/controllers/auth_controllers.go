package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/orderservice/app/requests"
	"github.com/shashiranjanraj/orderservice/app/resources"
	"github.com/shashiranjanraj/orderservice/app/services"
	"github.com/shashiranjanraj/orderservice/pkg/bind"
	"github.com/shashiranjanraj/orderservice/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Login handles POST /login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body requests.LoginRequest
	errs, err := bind.JSON(w, r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}
	response.Success(w, resources.NewToken(token))
}
