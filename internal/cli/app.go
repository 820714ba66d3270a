// Package cli implements the admin command-line tool. It drives the HTTP
// API; it never touches the database directly.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
)

type App struct {
	client *Client
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(client *Client, in io.Reader, out io.Writer) *App {
	return &App{
		client: client,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

const usage = `usage:
  ledgerkeep-cli create-user
  ledgerkeep-cli balance <user-id>
  ledgerkeep-cli export-statement <user-id>
`

// Run dispatches one subcommand. Interactive prompts are used only for
// create-user, so the other commands stay scriptable.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "create-user":
		return a.createUser(ctx)
	case "balance":
		return a.withUserID(args, func(id int64) error {
			balance, err := a.client.GetBalance(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Balance: %s\n", balance)
			return nil
		})
	case "export-statement":
		return a.withUserID(args, func(id int64) error {
			link, err := a.client.ExportStatement(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Key: %s\nURL: %s\n", link.Key, link.URL)
			return nil
		})
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (a *App) withUserID(args []string, fn func(id int64) error) error {
	if len(args) < 2 {
		return fmt.Errorf("%s requires a user id", args[0])
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id: %s", args[1])
	}
	return fn(id)
}

func (a *App) createUser(ctx context.Context) error {

	firstName, err := PromptLine(a.in, "First name", a.out)
	if err != nil {
		return err
	}
	lastName, err := PromptLine(a.in, "Last name", a.out)
	if err != nil {
		return err
	}
	email, err := PromptLine(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := PromptPassword("Password", a.out)
	if err != nil {
		return err
	}

	id, err := a.client.CreateUser(ctx, firstName, lastName, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created user %d\n", id)
	return nil
}
