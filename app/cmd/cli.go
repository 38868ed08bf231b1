package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Rakhulsr/go-catalog/app/configs"
	"github.com/Rakhulsr/go-catalog/app/db/seeders"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models/migrations"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/urfave/cli/v3"
)

func RunCli(env configs.ENV) {
	cmd := &cli.Command{
		Name:  "catalog",
		Usage: "catalog API maintenance commands",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed categories, providers and products with fake data",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "providers", Value: 5, Usage: "number of providers"},
					&cli.IntFlag{Name: "products", Value: 20, Usage: "number of products"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					store, _, err := configs.OpenBlobStore(ctx, env)
					if err != nil {
						return err
					}
					return seeders.DBSeed(ctx, db, store, seeders.Options{
						Providers: int(c.Int("providers")),
						Products:  int(c.Int("products")),
					})
				},
			},
			{
				Name:  "create-user",
				Usage: "Register an API user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					auth := services.NewAuthService(
						repositories.NewUserRepository(db),
						repositories.NewTokenRepository(db),
						helpers.NewValidator(),
						env.TokenTTL,
					)
					user, err := auth.Register(ctx, services.RegisterInput{
						Name:                 c.String("name"),
						Email:                c.String("email"),
						Password:             c.String("password"),
						PasswordConfirmation: c.String("password"),
					})
					if err != nil {
						return describe(err)
					}
					log.Printf("✅ User %s created (%s)", user.Email, user.ID)
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate a signing key for the local blob store",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSigningKey(); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the key to your .env file.")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// describe spells out field errors for the terminal.
func describe(err error) error {
	verr, ok := err.(*services.ValidationError)
	if !ok {
		return err
	}
	msg := "invalid input:"
	for field, problem := range verr.Fields {
		msg += fmt.Sprintf("\n  %s: %s", field, problem)
	}
	return fmt.Errorf("%s", msg)
}
