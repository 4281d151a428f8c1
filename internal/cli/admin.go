package cli

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
	"github.com/tmurzenkov/circulation-service/internal/service"
)

func (c *CLI) adminMenu(ctx context.Context, acc model.Account) error {
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
		if err := c.gate.Authorize(acc, service.CapAdmin); err != nil {
			c.println(userMessage(err))
			return nil
		}

		c.clear()
		c.printf("Welcome, %s!\n", acc.Username)
		c.println(" 1. Add user")
		c.println(" 2. Delete user")
		c.println(" 3. Change user password")
		c.println(" 4. Set user status")
		c.println(" 5. Edit user profile")
		c.println(" 6. List users")
		c.println(" 7. Add book")
		c.println(" 8. Delete book")
		c.println(" 9. Edit book")
		c.println("10. List books")
		c.println("11. Search the catalog")
		c.println("12. Log out")
		choice, err := c.readLine("Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			c.run(func() error { return c.addUser(ctx) })
		case "2":
			c.run(func() error { return c.deleteUser(ctx) })
		case "3":
			c.run(func() error { return c.changeUserPassword(ctx) })
		case "4":
			c.run(func() error { return c.setUserStatus(ctx) })
		case "5":
			c.run(func() error { return c.editUserProfile(ctx) })
		case "6":
			c.run(func() error { return c.listUsers(ctx) })
		case "7":
			c.run(func() error { return c.addBook(ctx) })
		case "8":
			c.run(func() error { return c.deleteBook(ctx) })
		case "9":
			c.run(func() error { return c.editBook(ctx) })
		case "10":
			c.run(func() error { return c.listBooks(ctx) })
		case "11":
			c.run(func() error { return c.searchCatalog(ctx) })
		case "12":
			c.println("Logged out.")
			return nil
		default:
			c.println("Invalid choice.")
		}
		c.pause()
	}
}

func (c *CLI) addUser(ctx context.Context) error {
	username, err := c.readLine("Username: ")
	if err != nil {
		return err
	}
	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}
	roleStr, err := c.readLine("Role (member/admin, blank=member): ")
	if err != nil {
		return err
	}
	role := model.RoleMember
	if roleStr != "" {
		role = model.Role(roleStr)
	}
	if _, err := c.registry.Register(ctx, username, password, role); err != nil {
		return err
	}
	c.println("User added.")
	return nil
}

func (c *CLI) deleteUser(ctx context.Context) error {
	id, err := c.readInt("User ID to delete: ")
	if err != nil {
		return err
	}
	closed, err := c.registry.Delete(ctx, id)
	if err != nil {
		return err
	}
	c.println("User deleted.")
	if closed > 0 {
		c.printf("Note: %d open loan(s) were closed and the books released. Loan history was kept.\n", closed)
	}
	return nil
}

func (c *CLI) changeUserPassword(ctx context.Context) error {
	id, err := c.readInt("User ID: ")
	if err != nil {
		return err
	}
	password, err := c.readPassword("New password: ")
	if err != nil {
		return err
	}
	if err := c.registry.ChangeCredential(ctx, id, password); err != nil {
		return err
	}
	c.println("Password changed.")
	return nil
}

func (c *CLI) setUserStatus(ctx context.Context) error {
	id, err := c.readInt("User ID: ")
	if err != nil {
		return err
	}
	activated, err := c.readTriState("Activated (y/n, blank to keep): ")
	if err != nil {
		return err
	}
	blocked, err := c.readTriState("Blocked (y/n, blank to keep): ")
	if err != nil {
		return err
	}
	upd := model.StatusUpdate{Activated: activated, Blocked: blocked}
	if err := c.registry.SetStatus(ctx, id, upd); err != nil {
		return err
	}
	c.println("Status updated.")
	return nil
}

func (c *CLI) readTriState(prompt string) (*bool, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return nil, err
	}
	switch line {
	case "":
		return nil, nil
	case "y", "Y":
		v := true
		return &v, nil
	case "n", "N":
		v := false
		return &v, nil
	default:
		return nil, errors.Wrap(errs.ErrValidation, "expected y, n or blank")
	}
}

func (c *CLI) editUserProfile(ctx context.Context) error {
	id, err := c.readInt("User ID: ")
	if err != nil {
		return err
	}
	username, err := c.readOptional("Username (blank to keep): ")
	if err != nil {
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
	roleStr, err := c.readOptional("Role (blank to keep): ")
	if err != nil {
		return err
	}
	var role *model.Role
	if roleStr != nil {
		r := model.Role(*roleStr)
		role = &r
	}
	upd := model.AccountUpdate{Username: username, Name: name, Surname: surname, Role: role}
	if err := c.registry.EditProfile(ctx, id, upd); err != nil {
		return err
	}
	c.println("Profile updated.")
	return nil
}

func (c *CLI) listUsers(ctx context.Context) error {
	accs, err := c.registry.List(ctx)
	if err != nil {
		return err
	}
	c.renderAccounts(accs)
	return nil
}

func (c *CLI) addBook(ctx context.Context) error {
	title, err := c.readLine("Title: ")
	if err != nil {
		return err
	}
	author, err := c.readLine("Author: ")
	if err != nil {
		return err
	}
	year, err := c.readInt("Publication year: ")
	if err != nil {
		return err
	}
	book, err := c.catalog.AddBook(ctx, title, author, year)
	if err != nil {
		return err
	}
	c.printf("Book added with ID %d.\n", book.ID)
	return nil
}

func (c *CLI) deleteBook(ctx context.Context) error {
	id, err := c.readInt("Book ID to delete: ")
	if err != nil {
		return err
	}
	if err := c.catalog.DeleteBook(ctx, id); err != nil {
		return err
	}
	c.println("Book deleted.")
	return nil
}

func (c *CLI) editBook(ctx context.Context) error {
	id, err := c.readInt("Book ID: ")
	if err != nil {
		return err
	}
	title, err := c.readOptional("Title (blank to keep): ")
	if err != nil {
		return err
	}
	author, err := c.readOptional("Author (blank to keep): ")
	if err != nil {
		return err
	}
	yearStr, err := c.readOptional("Publication year (blank to keep): ")
	if err != nil {
		return err
	}
	var year *int
	if yearStr != nil {
		y, err := strconv.Atoi(*yearStr)
		if err != nil {
			return errors.Wrap(errs.ErrValidation, "expected a number")
		}
		year = &y
	}
	holderStr, err := c.readOptional("Holder user ID (blank to keep, 'none' to clear): ")
	if err != nil {
		return err
	}
	var holder *sql.NullInt32
	if holderStr != nil {
		if *holderStr == "none" {
			holder = &sql.NullInt32{}
		} else {
			h, err := strconv.Atoi(*holderStr)
			if err != nil {
				return errors.Wrap(errs.ErrValidation, "expected a user ID or 'none'")
			}
			holder = &sql.NullInt32{Int32: int32(h), Valid: true}
		}
	}

	upd := model.BookUpdate{Title: title, Author: author, Year: year, Holder: holder}
	if err := c.catalog.EditBook(ctx, id, upd); err != nil {
		return err
	}
	c.println("Book updated.")
	if holder != nil {
		c.println("Holder override applied; the loan ledger was force-closed/reopened to match.")
	}
	return nil
}

func (c *CLI) listBooks(ctx context.Context) error {
	books, err := c.catalog.ListAll(ctx)
	if err != nil {
		return err
	}
	c.renderBooks(books)
	return nil
}
