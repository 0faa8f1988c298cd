package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"storefront/pkg/api"
	"storefront/pkg/application"
	"storefront/pkg/domain/model"
	"storefront/pkg/stub"
)

func main() {
	var cfg application.Config

	app := &cli.App{
		Name:  "storefront",
		Usage: "customer storefront client",
		Before: func(c *cli.Context) error {
			loaded, err := application.LoadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			cfg.ConfigureLogging()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "whoami",
				Usage: "resolve and print the current session",
				Action: func(c *cli.Context) error {
					app, err := application.New(cfg)
					if err != nil {
						return err
					}
					state := app.Start(c.Context)
					if identity, ok := app.Session.Identity(); ok {
						fmt.Printf("%s: %s <%s>\n", state, identity.Username, identity.Email)
						return nil
					}
					fmt.Println(state)
					return nil
				},
			},
			{
				Name:  "login",
				Usage: "start the sign-in handshake",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "account to sign in as"},
				},
				Action: func(c *cli.Context) error {
					app, err := application.New(cfg)
					if err != nil {
						return err
					}
					app.Start(c.Context)
					resp, err := app.Session.SignIn(c.Context, model.LoginRequest{Username: c.String("username")})
					if err != nil {
						return err
					}
					if resp.RedirectURL != "" {
						fmt.Printf("continue sign-in at: %s\n", resp.RedirectURL)
					}
					return nil
				},
			},
			{
				Name:  "logout",
				Usage: "start the sign-out handshake",
				Action: func(c *cli.Context) error {
					app, err := application.New(cfg)
					if err != nil {
						return err
					}
					app.Start(c.Context)
					if err := app.Session.SignOut(c.Context); err != nil {
						return err
					}
					if target, ok := app.LastNavigation(); ok {
						fmt.Printf("continue sign-out at: %s\n", target)
					}
					return nil
				},
			},
			{
				Name:  "catalog",
				Usage: "list catalog products",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category"},
					&cli.IntFlag{Name: "page", Value: 1},
					&cli.IntFlag{Name: "limit", Value: 20},
				},
				Action: func(c *cli.Context) error {
					app, err := application.New(cfg)
					if err != nil {
						return err
					}
					page, err := app.Catalog.ListProducts(c.Context, api.ProductFilter{
						ListOptions: api.ListOptions{Page: c.Int("page"), Limit: c.Int("limit")},
						Category:    c.String("category"),
					})
					if err != nil {
						return err
					}
					for _, product := range page.Products {
						fmt.Printf("%-4s %-24s $%-8.2f %s\n", product.ID, product.Name, product.Price, product.Category)
					}
					return nil
				},
			},
			cartCommand(&cfg),
			{
				Name:  "orders",
				Usage: "list the patient's orders",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "patient", Required: true},
				},
				Action: func(c *cli.Context) error {
					app, err := application.New(cfg)
					if err != nil {
						return err
					}
					app.Start(c.Context)
					page, err := app.Orders.ListOrders(c.Context, c.String("patient"), api.OrderFilter{})
					if err != nil {
						return err
					}
					for _, order := range page.Orders {
						fmt.Printf("%-10s %s $%-8.2f %s\n", order.ID, order.Date.Format("2006-01-02"), order.Total, order.Status)
					}
					return nil
				},
			},
			{
				Name:  "stub",
				Usage: "run a fake storefront backend",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: ":8080"},
				},
				Action: func(c *cli.Context) error {
					return runStub(c.String("addr"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func cartCommand(cfg *application.Config) *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "manage the shopping cart",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "add a catalog product to the cart",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "product", Required: true},
					&cli.IntFlag{Name: "qty", Value: 1},
				},
				Action: func(c *cli.Context) error {
					app, err := application.New(*cfg)
					if err != nil {
						return err
					}
					product, err := app.Catalog.GetProduct(c.Context, c.String("product"))
					if err != nil {
						return err
					}
					if err := app.Cart.AddItem(product, c.Int("qty")); err != nil {
						return err
					}
					fmt.Printf("added %dx %s, cart holds %d items\n", c.Int("qty"), product.Name, app.Cart.Count())
					return nil
				},
			},
			{
				Name:  "rm",
				Usage: "remove a product from the cart",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "product", Required: true},
				},
				Action: func(c *cli.Context) error {
					app, err := application.New(*cfg)
					if err != nil {
						return err
					}
					if err := app.Cart.RemoveItem(c.String("product")); err != nil {
						return err
					}
					fmt.Printf("cart holds %d items\n", app.Cart.Count())
					return nil
				},
			},
			{
				Name:  "ls",
				Usage: "show cart lines",
				Action: func(c *cli.Context) error {
					app, err := application.New(*cfg)
					if err != nil {
						return err
					}
					for _, line := range app.Cart.Lines() {
						fmt.Printf("%-4s %-24s x%-3d $%.2f\n", line.Product.ID, line.Product.Name, line.Quantity, line.Product.Price)
					}
					fmt.Printf("total: $%.2f (%d items)\n", app.Cart.Total(), app.Cart.Count())
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "empty the cart",
				Action: func(c *cli.Context) error {
					app, err := application.New(*cfg)
					if err != nil {
						return err
					}
					return app.Cart.Clear()
				},
			},
		},
	}
}

func runStub(addr string) error {
	srv := &http.Server{Addr: addr, Handler: stub.Router(stub.Options{})}

	go func() {
		log.WithField("addr", addr).Info("starting stub backend")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start stub backend")
		}
	}()

	killSignalChan := make(chan os.Signal, 1)
	signal.Notify(killSignalChan, os.Interrupt, syscall.SIGTERM)
	switch <-killSignalChan {
	case os.Interrupt:
		log.Info("Got SIGINT...")
	case syscall.SIGTERM:
		log.Info("Got SIGTERM...")
	}

	return srv.Shutdown(context.Background())
}
