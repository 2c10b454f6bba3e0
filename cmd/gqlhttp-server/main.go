package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/borderlesshq/gqlhttp"
	"github.com/borderlesshq/gqlhttp/handler"
	"github.com/borderlesshq/gqlhttp/server"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "serve the demo GraphQL schema over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: "address to bind, e.g. :8080"},
		&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "graph entrypoint path (default: graphql)"},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
		&cli.BoolFlag{Name: "pretty", Usage: "indent JSON responses"},
		&cli.IntFlag{Name: "max-age", Usage: "CORS preflight max age in seconds"},
		&cli.BoolFlag{Name: "no-playground", Usage: "do not mount the playground on /"},
		&cli.BoolFlag{Name: "no-tools", Usage: "do not mount the GraphiQL/Playground/Voyager pages"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "show debug logs"},
	},
	Action: serve,
}

func serve(ctx *cli.Context) error {
	cfg, err := server.LoadConfig(ctx.String("config"))
	if err != nil {
		return err
	}

	if ctx.String("config") == "" {
		color.Yellow.Print("⚡️ No configuration file provided, using defaults \n")
	}

	if addr := ctx.String("addr"); addr != "" {
		cfg.Address = addr
	}
	if path := ctx.String("path"); path != "" {
		cfg.GraphEntrypoint = path
	}
	if ctx.IsSet("pretty") {
		cfg.Pretty = ctx.Bool("pretty")
	}
	if ctx.IsSet("max-age") {
		cfg.MaxAge = ctx.Int("max-age")
	}
	if ctx.Bool("no-playground") {
		cfg.DisablePlayground = true
	}
	if ctx.Bool("no-tools") {
		cfg.DisableTools = true
	}

	schema, err := demoSchema()
	if err != nil {
		return err
	}

	h := gqlhttp.NewHandler(schema,
		handler.Pretty(cfg.Pretty),
		handler.MaxAge(cfg.MaxAge),
	)

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg.Address, h, *opts)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	select {
	case err := <-errCh:
		return err
	case <-quit:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "gqlhttp-server"
	app.Usage = serveCmd.Usage
	app.Description = `
Serves a demo GraphQL schema over HTTP with the gqlhttp handler:
content-type aware request parsing, CORS preflight answers, pretty
printing and the browser IDE pages.
`
	app.HideVersion = true
	app.Flags = serveCmd.Flags
	app.Before = func(context *cli.Context) error {
		if context.Bool("verbose") {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}
		return nil
	}

	app.Action = serveCmd.Action
	app.Commands = []*cli.Command{serveCmd}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		os.Exit(1)
	}
}
