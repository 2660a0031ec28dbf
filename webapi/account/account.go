package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/amirasaad/banking/pkg/config"
	"github.com/amirasaad/banking/pkg/middleware"
	"github.com/amirasaad/banking/pkg/repository"
	accountsvc "github.com/amirasaad/banking/pkg/service/account"
	authsvc "github.com/amirasaad/banking/pkg/service/auth"
	"github.com/amirasaad/banking/webapi/common"
)

// Routes registers the account endpoints. Deposit is the only one open to
// unauthenticated callers, so it is registered before the JWT guard applies.
func Routes(app *fiber.App, svc *accountsvc.Service, jwtCfg *config.Jwt) {
	app.Post("/account/deposit", Deposit(svc))

	protected := app.Group("/account", middleware.JwtProtected(jwtCfg))
	protected.Post("/", Open(svc))
	protected.Get("/", List(svc))
	protected.Delete("/:number", Close(svc))
	protected.Post("/withdraw", Withdraw(svc))
	protected.Post("/transfer", Transfer(svc))
	protected.Get("/:number/transactions", Transactions(svc))
}

func callerID(c *fiber.Ctx) (uint, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return 0, common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
	}
	id, err := authsvc.CurrentUserID(token)
	if err != nil {
		return 0, common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
	}
	return id, nil
}

// Open creates a new account for the authenticated user.
// @Summary Open an account
// @Description Open a new account with a four digit number and access code
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body OpenAccountRequest true "Account details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Security Bearer
// @Router /account [post]
func Open(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[OpenAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Open(c.Context(), userID, input.Number, input.AccessCode)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't open account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", toAccountResponse(a))
	}
}

// List returns all accounts owned by the authenticated user.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Security Bearer
// @Router /account [get]
func List(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return err
		}
		owner, accounts, err := svc.ListByOwner(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts retrieved", fiber.Map{
			"full_name": owner.FullName,
			"accounts":  toAccountResponses(accounts),
		})
	}
}

// Close deletes an account owned by the authenticated user.
// @Summary Close an account
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Security Bearer
// @Router /account/{number} [delete]
func Close(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return err
		}
		number := c.Params("number")
		if err := svc.Close(c.Context(), number, userID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't close account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account closed", nil)
	}
}

// Deposit credits an account. No authentication required; anyone can pay
// into a known account number.
// @Summary Deposit into an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body DepositRequest true "Deposit details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /account/deposit [post]
func Deposit(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return err
		}
		a, entry, err := svc.Deposit(c.Context(), input.Number, input.Amount, input.Contact)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit completed", fiber.Map{
			"account":     toAccountResponse(a),
			"transaction": toTransactionResponse(entry),
		})
	}
}

// Withdraw debits an account owned by the authenticated user.
// @Summary Withdraw from an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body WithdrawRequest true "Withdraw details"
// @Success 201 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Security Bearer
// @Router /account/withdraw [post]
func Withdraw(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[WithdrawRequest](c)
		if input == nil {
			return err
		}
		a, entry, err := svc.Withdraw(c.Context(), input.Number, input.Amount, input.AccessCode, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't withdraw", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdraw completed", fiber.Map{
			"account":     toAccountResponse(a),
			"transaction": toTransactionResponse(entry),
		})
	}
}

// Transfer moves money between two accounts; the source must be owned by
// the authenticated user.
// @Summary Transfer between accounts
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body TransferRequest true "Transfer details"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Security Bearer
// @Router /account/transfer [post]
func Transfer(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		from, entry, err := svc.Transfer(c.Context(), input.FromNumber, input.ToNumber, input.Amount, input.AccessCode, userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer completed", fiber.Map{
			"account":     toAccountResponse(from),
			"transaction": toTransactionResponse(entry),
		})
	}
}

// Transactions lists the ledger entries touching an account, newest pages
// first by id, filtered by kind.
// @Summary List account transactions
// @Tags accounts
// @Produce json
// @Param number path string true "Account number"
// @Param kind query string false "Filter: WITHDRAW, DEPOSIT, or ALL" default(ALL)
// @Param page query int false "Page number" default(0)
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Security Bearer
// @Router /account/{number}/transactions [get]
func Transactions(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := callerID(c)
		if err != nil {
			return err
		}
		number := c.Params("number")
		filter, err := parseFilter(c.Query("kind", "ALL"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid kind filter", err, fiber.StatusBadRequest)
		}
		page := c.QueryInt("page", 0)
		if page < 0 {
			page = 0
		}
		entries, err := svc.Transactions(c.Context(), number, userID, filter, page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions retrieved", toTransactionResponses(entries))
	}
}

func parseFilter(kind string) (repository.LedgerFilter, error) {
	switch kind {
	case "WITHDRAW":
		return repository.FilterWithdraw, nil
	case "DEPOSIT":
		return repository.FilterDeposit, nil
	case "ALL", "":
		return repository.FilterAll, nil
	default:
		return repository.FilterAll, fiber.NewError(fiber.StatusBadRequest, "kind must be WITHDRAW, DEPOSIT, or ALL")
	}
}
