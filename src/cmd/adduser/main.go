// Command adduser registers a user directly against the database.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"spendlog-server/src/auth"
	"spendlog-server/src/db"
	store "spendlog-server/src/db/sql"
	"spendlog-server/src/models"
	"spendlog-server/src/services"
	"spendlog-server/src/util"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

type registrar interface {
	Register(ctx context.Context, login, password string, budget decimal.Decimal) (*models.User, error)
}

// connect opens the user service for dbURL. Tests replace it.
var connect = func(ctx context.Context, dbURL string) (registrar, func(), error) {
	pool, err := db.Connect(ctx, dbURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	users := services.NewUserService(store.NewStore(pool), auth.Bcrypt{}, nil)
	return users, pool.Close, nil
}

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Login")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	budgetFlag := fs.String("budget", "0", "Monthly budget")
	dbURL := fs.String("db", os.Getenv("DATABASE_URL"), "Postgres connection URL (defaults to DATABASE_URL)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <login> [-password <password>] [-budget <amount>] [-db <url>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user")
	}
	if !util.ValidateUsername(*username) {
		return fmt.Errorf("login must be between 3 and 30 characters")
	}

	budget, err := decimal.NewFromString(*budgetFlag)
	if err != nil || budget.IsNegative() || !util.ValidateMoney(budget) {
		return fmt.Errorf("invalid budget %q", *budgetFlag)
	}

	if *dbURL == "" {
		return fmt.Errorf("no database: pass -db or set DATABASE_URL")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if !util.ValidatePassword(password) {
		return fmt.Errorf("password must be at least 8 characters with uppercase, lowercase, digit, and special character")
	}

	ctx := context.Background()
	users, closeDB, err := connect(ctx, *dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeDB()

	user, err := users.Register(ctx, *username, password, budget)
	if errors.Is(err, models.ErrDuplicate) {
		return fmt.Errorf("user %s already exists", *username)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", user.Username, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
