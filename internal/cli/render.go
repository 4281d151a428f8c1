package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/tmurzenkov/circulation-service/internal/model"
)

func (c *CLI) renderBooks(books []model.Book) {
	if len(books) == 0 {
		c.println("No books.")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tYEAR\tSTATUS")
	for _, b := range books {
		status := "available"
		if !b.Available() {
			status = fmt.Sprintf("borrowed by user %d", b.Holder.Int32)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", b.ID, b.Title, b.Author, b.Year, status)
	}
	w.Flush()
}

func (c *CLI) renderAccounts(accs []model.Account) {
	if len(accs) == 0 {
		c.println("No users.")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tNAME\tACTIVATED\tBLOCKED")
	for _, a := range accs {
		name := a.Name.String
		if a.Surname.Valid {
			name += " " + a.Surname.String
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%t\n", a.ID, a.Username, a.Role, name, a.Activated, a.Blocked)
	}
	w.Flush()
}

func (c *CLI) renderLedger(entries []model.LedgerEntry) {
	if len(entries) == 0 {
		c.println("No loans.")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BOOK\tBORROWED\tRETURNED")
	for _, e := range entries {
		returned := "open"
		if e.ReturnedAt.Valid {
			returned = e.ReturnedAt.Time.Format(time.DateTime)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.BookID, e.BorrowedAt.Format(time.DateTime), returned)
	}
	w.Flush()
}
