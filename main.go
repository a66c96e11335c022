package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"pdvlite/m/internal/catalog"
	"pdvlite/m/internal/config"
	"pdvlite/m/internal/database"
	"pdvlite/m/internal/engine"
	"pdvlite/m/internal/migrations"
	"pdvlite/m/internal/seed"
)

func openStore() (*sqlx.DB, config.Config, error) {
	cfg := config.Load()
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		return nil, cfg, err
	}
	return db, cfg, nil
}

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "pdvlite",
		Usage: "embedded point-of-sale sale and cash-register ledger engine",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create the schema and seed the initial data",
				Action: func(*cli.Context) error {
					db, cfg, err := openStore()
					if err != nil {
						return err
					}
					defer db.Close()
					if err := migrations.Run(db); err != nil {
						return err
					}
					if err := seed.Run(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
						return err
					}
					logrus.Info("database ready")
					return nil
				},
			},
			{
				Name:  "useradd",
				Usage: "create an operator account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "role", Value: "clerk", Usage: "admin, manager or clerk"},
				},
				Action: func(ctx *cli.Context) error {
					db, _, err := openStore()
					if err != nil {
						return err
					}
					defer db.Close()
					id, err := catalog.New(db).CreateUser(
						ctx.String("name"), ctx.String("username"), ctx.String("password"), ctx.String("role"))
					if err != nil {
						return err
					}
					fmt.Printf("user %d created\n", id)
					return nil
				},
			},
			{
				Name:  "report",
				Usage: "print the register report for a period",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Required: true, Usage: "YYYY-MM-DD"},
					&cli.StringFlag{Name: "to", Required: true, Usage: "YYYY-MM-DD"},
				},
				Action: func(ctx *cli.Context) error {
					from, err := time.Parse("2006-01-02", ctx.String("from"))
					if err != nil {
						return fmt.Errorf("invalid from date: %w", err)
					}
					to, err := time.Parse("2006-01-02", ctx.String("to"))
					if err != nil {
						return fmt.Errorf("invalid to date: %w", err)
					}
					to = to.AddDate(0, 0, 1)

					db, _, err := openStore()
					if err != nil {
						return err
					}
					defer db.Close()

					report, err := engine.New(db, logrus.StandardLogger()).RegisterReport(from, to)
					if err != nil {
						return err
					}
					for _, entry := range report {
						fmt.Printf("%s  %-20s  status=%-6s  moved=%s  sales=%s\n",
							entry.Register.Code, entry.Operator, entry.Register.Status,
							entry.MovementTotal, entry.SalesTotal)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
