package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tutordesk/internal/account"
	"tutordesk/internal/app"
)

func main() {
	accountFlag := flag.String("account", "", "account name (overrides config default)")
	flag.Parse()

	// Optional .env for TUTORDESK_API_URL and friends.
	_ = godotenv.Load()

	accountName := account.Resolve(*accountFlag)
	if err := account.ValidateName(accountName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fx.New(
		app.Module(app.Params{AccountName: accountName}),
		fx.NopLogger,
	).Run()
}
