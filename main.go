package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"shopfront/pkg/app"
	"shopfront/pkg/transport"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cliApp := &cli.App{
		Name:  "shopfront",
		Usage: "local-first storefront demo",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the storefront server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address"},
					&cli.StringFlag{Name: "data-file", Usage: "path to the durable store file"},
				},
				Action: serve,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.WithError(err).Fatal("shopfront failed")
	}
}

func serve(c *cli.Context) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.Addr = addr
	}
	if dataFile := c.String("data-file"); dataFile != "" {
		cfg.DataFile = dataFile
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}

	router, err := transport.Router(application)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: router}
	log.WithFields(log.Fields{"addr": cfg.Addr, "storage": cfg.StorageDriver}).Info("Starting server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down...")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
