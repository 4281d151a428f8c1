package cli

import (
	"bufio"
	"bytes"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
)

func newTestCLI(input string) (*CLI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &CLI{
		in:  bufio.NewScanner(strings.NewReader(input)),
		out: out,
	}, out
}

func TestReadInt(t *testing.T) {
	t.Parallel()

	c, _ := newTestCLI("17\n")
	n, err := c.readInt("ID: ")
	require.NoError(t, err)
	require.Equal(t, 17, n)

	c, _ = newTestCLI("seventeen\n")
	_, err = c.readInt("ID: ")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestReadOptional(t *testing.T) {
	t.Parallel()

	c, _ := newTestCLI("\n")
	v, err := c.readOptional("Name: ")
	require.NoError(t, err)
	require.Nil(t, v)

	c, _ = newTestCLI("  Orwell  \n")
	v, err = c.readOptional("Name: ")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, "Orwell", *v)
}

func TestReadTriState(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		input   string
		want    *bool
		wantErr bool
	}{
		{"\n", nil, false},
		{"y\n", boolPtr(true), false},
		{"N\n", boolPtr(false), false},
		{"maybe\n", nil, true},
	}
	for _, tt := range tests {
		c, _ := newTestCLI(tt.input)
		got, err := c.readTriState("Blocked: ")
		if tt.wantErr {
			require.ErrorIs(t, err, errs.ErrValidation)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func boolPtr(v bool) *bool { return &v }

// The password prompt must land on the CLI's writer, not the process stdout.
// ReadPassword itself needs a terminal, so when stdin is not one we only check
// the prompt made it to the buffer.
func TestReadPasswordMasked_PromptGoesToWriter(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _ = readPasswordMasked(out, "Password: ")
	require.True(t, strings.HasPrefix(out.String(), "Password: "))
}

func TestRenderBooks(t *testing.T) {
	t.Parallel()

	c, out := newTestCLI("")
	c.renderBooks([]model.Book{
		{ID: 1, Title: "1984", Author: "George Orwell", Year: 1949},
		{ID: 2, Title: "To Kill a Mockingbird", Author: "Harper Lee", Year: 1960,
			Holder: sql.NullInt32{Int32: 2, Valid: true}},
	})

	got := out.String()
	require.Contains(t, got, "1984")
	require.Contains(t, got, "available")
	require.Contains(t, got, "borrowed by user 2")
}

func TestRenderBooks_Empty(t *testing.T) {
	t.Parallel()

	c, out := newTestCLI("")
	c.renderBooks(nil)
	require.Equal(t, "No books.\n", out.String())
}

func TestRenderLedger(t *testing.T) {
	t.Parallel()

	borrowed := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	c, out := newTestCLI("")
	c.renderLedger([]model.LedgerEntry{
		{BookID: 1, BorrowedAt: borrowed},
		{BookID: 2, BorrowedAt: borrowed,
			ReturnedAt: sql.NullTime{Time: borrowed.Add(48 * time.Hour), Valid: true}},
	})

	got := out.String()
	require.Contains(t, got, "open")
	require.Contains(t, got, "2024-01-17")
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		err  error
		want string
	}{
		{errs.ErrInvalidCredentials, "Invalid username or password."},
		{errs.ErrDuplicateUsername, "That username is already taken."},
		{errs.ErrAlreadyBorrowed, "That book is already borrowed."},
		{errs.ErrNotReturnable, "You cannot return that book."},
		{errs.ErrAccountBlocked, "Your account is blocked from borrowing and returning."},
		{errs.ErrAccountDeactivated, "Your account is deactivated. The session will end."},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, userMessage(tt.err))
	}
}
