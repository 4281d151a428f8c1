// Package cli is the menu-driven text interface. It owns no business rules:
// every action is dispatched to the services and every error is recovered
// into a message and a redisplayed menu.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
	"github.com/tmurzenkov/circulation-service/internal/service"
)

type CLI struct {
	log      *zap.Logger
	registry RegistryService
	catalog  CatalogService
	lending  LendingService
	gate     AccessService

	in           *bufio.Scanner
	out          io.Writer
	readPassword func(prompt string) (string, error)
}

func New(registry RegistryService, catalog CatalogService, lending LendingService, gate AccessService, log *zap.Logger) *CLI {
	c := &CLI{
		log:      log.Named("cli"),
		registry: registry,
		catalog:  catalog,
		lending:  lending,
		gate:     gate,
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
	}
	c.readPassword = func(prompt string) (string, error) {
		return readPasswordMasked(c.out, prompt)
	}
	return c
}

// Run drives the welcome menu until the user exits or input ends.
func (c *CLI) Run(ctx context.Context) error {
	for {
		c.clear()
		c.println("Welcome to the library!")
		c.println("1. Log in")
		c.println("2. Register")
		c.println("3. Quit")
		choice, err := c.readLine("Choose an option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			if err := c.login(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case "2":
			c.register(ctx)
		case "3":
			c.println("Goodbye!")
			return nil
		default:
			c.println("Invalid choice.")
		}
	}
}

func (c *CLI) login(ctx context.Context) error {
	username, err := c.readLine("Username: ")
	if err != nil {
		return err
	}
	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	acc, err := c.registry.Authenticate(ctx, username, password)
	if err != nil {
		c.println(userMessage(err))
		return nil
	}
	if err := c.gate.Authorize(acc, service.CapBrowse); err != nil {
		c.println(userMessage(err))
		return nil
	}
	c.printf("Logged in. Welcome, %s!\n", acc.Username)
	c.log.Info("session started",
		zap.Int("accountID", acc.ID), zap.String("role", string(acc.Role)))

	if acc.Role == model.RoleAdmin {
		return c.adminMenu(ctx, acc)
	}
	return c.memberMenu(ctx, acc)
}

func (c *CLI) register(ctx context.Context) {
	username, err := c.readLine("Username: ")
	if err != nil {
		return
	}
	password, err := c.readPassword("Password: ")
	if err != nil {
		return
	}

	if _, err := c.registry.Register(ctx, username, password, model.RoleMember); err != nil {
		c.println(userMessage(err))
		return
	}
	c.println("Registered. You can log in now.")
}

// refresh re-reads the account so status changes made by an admin take effect
// mid-session; a deactivated account ends the session on its next action.
func (c *CLI) refresh(ctx context.Context, acc model.Account) (model.Account, error) {
	fresh, err := c.registry.Get(ctx, acc.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Account{}, errs.ErrAccountDeactivated
		}
		return model.Account{}, err
	}
	return fresh, nil
}

// userMessage flattens any error into something printable at the menu
// boundary; nothing that reaches here is fatal to the process.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errs.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, errs.ErrDuplicateUsername):
		return "That username is already taken."
	case errors.Is(err, errs.ErrNotFound):
		return "No such record."
	case errors.Is(err, errs.ErrAlreadyBorrowed):
		return "That book is already borrowed."
	case errors.Is(err, errs.ErrNotReturnable):
		return "You cannot return that book."
	case errors.Is(err, errs.ErrAccountBlocked):
		return "Your account is blocked from borrowing and returning."
	case errors.Is(err, errs.ErrAccountDeactivated):
		return "Your account is deactivated. The session will end."
	case errors.Is(err, errs.ErrNotAllowed):
		return "You are not allowed to do that."
	case errors.Is(err, errs.ErrValidation):
		return "Invalid input: " + err.Error()
	default:
		return "Something went wrong: " + err.Error()
	}
}
