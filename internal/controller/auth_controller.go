package controller

import (
	"code-playground-be/internal/dto"
	"code-playground-be/internal/pkg/serverutils"
	"code-playground-be/internal/service"
	"code-playground-be/pkg/autherr"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	SignUp(ctx *fiber.Ctx) error
	SignIn(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/signup", c.SignUp)
	h.Post("/signin", c.SignIn)
	h.Post("/logout", c.Logout)
}

// credentialError shapes a classified auth failure for the client: the
// fixed message plus how long to display it before auto-dismissing.
type credentialError struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	DisplayMs int64  `json:"display_ms"`
}

func classifiedResponse(ctx *fiber.Ctx, ce *autherr.Error) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"code":    401,
		"message": ce.Message,
		"data": credentialError{
			Kind:      ce.Kind.String(),
			Message:   ce.Message,
			DisplayMs: autherr.DisplayWindow.Milliseconds(),
		},
	})
}

func (c *authController) SignUp(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	// The well-formedness flag is computed here, independently of the
	// credential store. A malformed email means the store is never
	// called and the request quietly does nothing.
	emailValid := serverutils.EmailIsWellFormed(req.Email)

	res, err := c.service.SignUp(ctx.Context(), &req, emailValid)
	if err != nil {
		if ce, ok := autherr.As(err); ok {
			return classifiedResponse(ctx, ce)
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if res == nil {
		// Validation skip: not an error, nothing happened.
		return ctx.JSON(serverutils.SuccessResponse[any]("Skipped", nil))
	}
	return ctx.JSON(serverutils.SuccessResponse("Signed up successfully", res))
}

func (c *authController) SignIn(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	emailValid := serverutils.EmailIsWellFormed(req.Email)

	ipAddress := ctx.IP()
	userAgent := ctx.Get("User-Agent")

	res, err := c.service.SignIn(ctx.Context(), &req, emailValid, ipAddress, userAgent)
	if err != nil {
		if ce, ok := autherr.As(err); ok {
			return classifiedResponse(ctx, ce)
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if res == nil {
		return ctx.JSON(serverutils.SuccessResponse[any]("Skipped", nil))
	}
	return ctx.JSON(serverutils.SuccessResponse("Signed in successfully", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		// Stateless logout still succeeds for the client.
		return ctx.JSON(serverutils.SuccessResponse[any]("Logged out successfully", nil))
	}

	_ = c.service.Logout(ctx.Context(), req.RefreshToken)

	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out successfully", nil))
}
