package cli

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
	"github.com/tmurzenkov/circulation-service/internal/service"
)

func (c *CLI) memberMenu(ctx context.Context, acc model.Account) error {
	for {
		fresh, err := c.refresh(ctx, acc)
		if err != nil {
			if errors.Is(err, errs.ErrAccountDeactivated) {
				c.println(userMessage(err))
				return nil
			}
			return err
		}
		acc = fresh
		if err := c.gate.Authorize(acc, service.CapBrowse); err != nil {
			c.println(userMessage(err))
			return nil
		}

		open, err := c.lending.CountOpenFor(ctx, acc.ID)
		if err != nil {
			return err
		}

		c.clear()
		c.printf("Welcome, %s! Open loans: %d\n", acc.Username, open)
		c.println("1. Show available books")
		c.println("2. Borrow a book")
		c.println("3. Return a book")
		c.println("4. My books")
		c.println("5. My loan history")
		c.println("6. Search the catalog")
		c.println("7. Edit my profile")
		c.println("8. Change my password")
		c.println("9. Log out")
		choice, err := c.readLine("Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			c.run(func() error { return c.showAvailable(ctx) })
		case "2":
			c.run(func() error { return c.borrowBook(ctx, acc) })
		case "3":
			c.run(func() error { return c.returnBook(ctx, acc) })
		case "4":
			c.run(func() error { return c.showMine(ctx, acc) })
		case "5":
			c.run(func() error { return c.showHistory(ctx, acc) })
		case "6":
			c.run(func() error { return c.searchCatalog(ctx) })
		case "7":
			c.run(func() error { return c.editOwnProfile(ctx, acc) })
		case "8":
			c.run(func() error { return c.changeOwnPassword(ctx, acc) })
		case "9":
			c.println("Logged out.")
			return nil
		default:
			c.println("Invalid choice.")
		}
		c.pause()
	}
}

// run recovers an action's error into a printed message; EOF and context
// errors are the only things it lets the menu die on upstream.
func (c *CLI) run(action func() error) {
	if err := action(); err != nil && !errors.Is(err, io.EOF) {
		c.println(userMessage(err))
	}
}

func (c *CLI) pause() {
	_, _ = c.readLine("Press Enter to continue...")
}

func (c *CLI) showAvailable(ctx context.Context) error {
	books, err := c.catalog.ListAvailable(ctx)
	if err != nil {
		return err
	}
	c.renderBooks(books)
	return nil
}

func (c *CLI) borrowBook(ctx context.Context, acc model.Account) error {
	if err := c.gate.Authorize(acc, service.CapBorrow); err != nil {
		return err
	}
	id, err := c.readInt("Book ID to borrow: ")
	if err != nil {
		return err
	}
	if err := c.lending.Borrow(ctx, acc, id); err != nil {
		return err
	}
	c.println("Book borrowed.")
	return nil
}

func (c *CLI) returnBook(ctx context.Context, acc model.Account) error {
	if err := c.gate.Authorize(acc, service.CapReturn); err != nil {
		return err
	}
	id, err := c.readInt("Book ID to return: ")
	if err != nil {
		return err
	}
	if err := c.lending.Return(ctx, acc, id); err != nil {
		return err
	}
	c.println("Book returned.")
	return nil
}

func (c *CLI) showMine(ctx context.Context, acc model.Account) error {
	books, err := c.catalog.ListBorrowedBy(ctx, acc.ID)
	if err != nil {
		return err
	}
	c.renderBooks(books)
	return nil
}

func (c *CLI) showHistory(ctx context.Context, acc model.Account) error {
	entries, err := c.lending.HistoryFor(ctx, acc.ID)
	if err != nil {
		return err
	}
	c.renderLedger(entries)
	return nil
}

func (c *CLI) searchCatalog(ctx context.Context) error {
	term, err := c.readLine("Search term: ")
	if err != nil {
		return err
	}
	books, err := c.catalog.Search(ctx, term)
	if err != nil {
		return err
	}
	c.renderBooks(books)
	return nil
}

func (c *CLI) editOwnProfile(ctx context.Context, acc model.Account) error {
	if err := c.gate.Authorize(acc, service.CapProfileEdit); err != nil {
		return err
	}
	name, err := c.readOptional("Given name (blank to keep): ")
	if err != nil {
		return err
	}
	surname, err := c.readOptional("Family name (blank to keep): ")
	if err != nil {
		return err
	}
	if err := c.registry.EditProfile(ctx, acc.ID, model.AccountUpdate{Name: name, Surname: surname}); err != nil {
		return err
	}
	c.println("Profile updated.")
	return nil
}

func (c *CLI) changeOwnPassword(ctx context.Context, acc model.Account) error {
	password, err := c.readPassword("New password: ")
	if err != nil {
		return err
	}
	if err := c.registry.ChangeCredential(ctx, acc.ID, password); err != nil {
		return err
	}
	c.println("Password changed.")
	return nil
}
