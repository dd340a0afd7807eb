package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a recording stub.
type execIface interface {
	isLoggedIn() bool

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error

	Products(ctx context.Context) error
	Product(ctx context.Context, args []string) error
	Mine(ctx context.Context) error
	Dashboard(ctx context.Context) error
	AddProduct(ctx context.Context) error
	EditProduct(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error

	Cart(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Qty(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Clear(ctx context.Context) error

	Metrics(ctx context.Context) error
}

const (
	guestHelp = "Available commands: products, product <id>, signup, login, metrics, help, exit"
	userHelp  = "Available commands: products, product <id>, cart, add <id> [qty], qty <id> <n>, remove <id>, clear,\n" +
		"  mine, dashboard, addproduct, editproduct <id>, deleteproduct <id>, upload <path>...,\n" +
		"  whoami, profile, logout, metrics, help, exit"
)

// runREPL reads commands from reader until EOF or exit/quit.
//
// The first token of a line is the command, the rest are its arguments.
// A non-nil error from a command is printed as-is; nothing stops the loop
// except EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vibecart %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "signup":
			cmdErr = a.Signup(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.Whoami(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)

		case "products":
			cmdErr = a.Products(ctx)
		case "product":
			cmdErr = a.Product(ctx, args)
		case "mine":
			cmdErr = a.Mine(ctx)
		case "dashboard":
			cmdErr = a.Dashboard(ctx)
		case "addproduct":
			cmdErr = a.AddProduct(ctx)
		case "editproduct":
			cmdErr = a.EditProduct(ctx, args)
		case "deleteproduct":
			cmdErr = a.DeleteProduct(ctx, args)
		case "upload":
			cmdErr = a.Upload(ctx, args)

		case "cart":
			cmdErr = a.Cart(ctx)
		case "add":
			cmdErr = a.Add(ctx, args)
		case "qty":
			cmdErr = a.Qty(ctx, args)
		case "remove":
			cmdErr = a.Remove(ctx, args)
		case "clear":
			cmdErr = a.Clear(ctx)

		case "metrics":
			cmdErr = a.Metrics(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(cmdErr.Error())
		}
	}
}
