package account

import (
	"errors"

	"github.com/amirasaad/ledger/pkg/commands"
	"github.com/amirasaad/ledger/pkg/domain/account"
	accountsvc "github.com/amirasaad/ledger/pkg/service/account"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var errDestinationChoice = errors.New("exactly one of destination_account_id or destination must be provided")

// Routes registers HTTP routes for account-related operations using the Fiber web framework.
//
// Routes:
//   - GET    /account                : List accounts.
//   - GET    /account/:id            : Retrieve an account.
//   - GET    /account/:id/movements  : List the movements of an account in insertion order.
//   - POST   /account/:id/deposit    : Deposit funds into the specified account.
//   - POST   /account/:id/withdraw   : Withdraw funds from the specified account.
//   - POST   /account/:id/transfer   : Transfer funds to another account.
func Routes(app *fiber.App, accountSvc *accountsvc.Service) {
	app.Get("/account", ListAccounts(accountSvc))
	app.Get("/account/:id", GetAccount(accountSvc))
	app.Get("/account/:id/movements", GetMovements(accountSvc))
	app.Post("/account/:id/deposit", Deposit(accountSvc))
	app.Post("/account/:id/withdraw", Withdraw(accountSvc))
	app.Post("/account/:id/transfer", Transfer(accountSvc))
}

func accountIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		log.Errorf("Invalid account ID %q: %v", c.Params("id"), err)
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Account ID must be a valid UUID")
	}
	return id, nil
}

// ListAccounts returns a Fiber handler listing every account without history.
// @Summary List accounts
// @Description Lists every account without its movement history.
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response "Accounts fetched"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /account [get]
func ListAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := accountSvc.ListAccounts(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		dtos := make([]*AccountDTO, 0, len(accounts))
		for _, a := range accounts {
			dtos = append(dtos, ToAccountDTO(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", dtos)
	}
}

// GetAccount returns a Fiber handler that retrieves an account by ID.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response{data=AccountDTO} "Account fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid account ID"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /account/{id} [get]
func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountIDParam(c)
		if err != nil {
			return err
		}
		a, err := accountSvc.GetAccount(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountDTO(a))
	}
}

// GetMovements returns a Fiber handler listing the movements of an account.
// @Summary List account movements
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response{data=[]MovementDTO} "Movements fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid account ID"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /account/{id}/movements [get]
func GetMovements(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountIDParam(c)
		if err != nil {
			return err
		}
		movements, err := accountSvc.ListMovements(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list movements", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Movements fetched", ToMovementDTOs(movements))
	}
}

// Deposit returns a Fiber handler that credits the account in the path.
// A missing timestamp means the server clock.
// @Summary Deposit funds into an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body DepositRequest true "Deposit details"
// @Success 201 {object} common.Response{data=MovementDTO} "Deposit successful"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /account/{id}/deposit [post]
func Deposit(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountIDParam(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return err // error response already written
		}
		log.Infof("Deposit handler: account %s, amount %s", id, input.Amount)
		m, err := accountSvc.Deposit(c.UserContext(), commands.Deposit{
			AccountID: id,
			Amount:    input.Amount,
			Timestamp: timestampOrZero(input.Timestamp),
		})
		if err != nil {
			log.Errorf("Failed to deposit: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit successful", ToMovementDTO(m))
	}
}

// Withdraw returns a Fiber handler that debits the account in the path.
// @Summary Withdraw funds from an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body WithdrawRequest true "Withdrawal details"
// @Success 201 {object} common.Response{data=MovementDTO} "Withdrawal successful"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Insufficient balance"
// @Router /account/{id}/withdraw [post]
func Withdraw(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountIDParam(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[WithdrawRequest](c)
		if input == nil {
			return err // error response already written
		}
		log.Infof("Withdraw handler: account %s, amount %s", id, input.Amount)
		m, err := accountSvc.Withdraw(c.UserContext(), commands.Withdraw{
			AccountID: id,
			Amount:    input.Amount,
			Timestamp: timestampOrZero(input.Timestamp),
		})
		if err != nil {
			log.Errorf("Failed to withdraw: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdrawal successful", ToMovementDTO(m))
	}
}

// Transfer returns a Fiber handler that moves funds from the account in the
// path to the destination named in the body, by ID or by bank coordinates.
// @Summary Transfer funds between accounts
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Source account ID"
// @Param request body TransferRequest true "Transfer details"
// @Success 201 {object} common.Response{data=MovementDTO} "Transfer successful"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Daily limit exceeded or insufficient balance"
// @Router /account/{id}/transfer [post]
func Transfer(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := accountIDParam(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err // error response already written
		}
		if (input.DestinationAccountID == "") == (input.Destination == nil) {
			return common.ProblemDetailsJSON(c, "Invalid destination", errDestinationChoice, fiber.StatusBadRequest)
		}

		cmd := commands.Transfer{
			SourceAccountID: id,
			Amount:          input.Amount,
			Timestamp:       timestampOrZero(input.Timestamp),
		}
		if input.Destination != nil {
			cmd.Destination = &account.Key{
				Bank:   input.Destination.Bank,
				Branch: input.Destination.Branch,
				Number: input.Destination.Number,
			}
		} else {
			// format already checked by the validator
			cmd.DestinationAccountID = uuid.MustParse(input.DestinationAccountID)
		}

		log.Infof("Transfer handler: account %s, amount %s", id, input.Amount)
		m, err := accountSvc.Transfer(c.UserContext(), cmd)
		if err != nil {
			log.Errorf("Failed to transfer: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer successful", ToMovementDTO(m))
	}
}
