package user

import (
	"github.com/gofiber/fiber/v2"

	usersvc "github.com/amirasaad/banking/pkg/service/user"
	"github.com/amirasaad/banking/webapi/common"
)

// Routes registers the user endpoints.
func Routes(app *fiber.App, userSvc *usersvc.Service) {
	app.Post("/user", Register(userSvc))
}

// Register creates a new user account.
// @Summary Register a new user
// @Description Create a user with username, password, email, and full name
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /user [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err // error response already written
		}
		u, err := userSvc.Register(c.Context(), input.Username, input.Email, input.Password, input.FullName)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't register user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered", toResponse(u))
	}
}
