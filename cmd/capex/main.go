package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mvbarbosa/capex/internal/cli"
	"github.com/mvbarbosa/capex/internal/config"
	"github.com/mvbarbosa/capex/internal/liststore"
	"github.com/mvbarbosa/capex/internal/service"
	"github.com/mvbarbosa/capex/internal/validate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StoreURL == "" {
		return fmt.Errorf("no store URL configured; set store_url in ~/.capex/config.yaml or CAPEX_STORE_URL")
	}

	token, err := cfg.AuthToken()
	if err != nil {
		return err
	}

	var observer liststore.Observer = liststore.NoopObserver{}
	if cfg.LogCalls {
		observer = liststore.NewLogObserver(os.Stderr)
	}

	store := liststore.NewHTTPClient(liststore.HTTPConfig{
		BaseURL:   cfg.StoreURL,
		AuthToken: token,
		TimeoutMs: cfg.TimeoutMs,
	}, observer)

	structureSvc := service.NewStructureService(store)

	app := &cli.App{
		Projects:  service.NewProjectService(store, structureSvc, validate.New()),
		Structure: structureSvc,
		Peps:      service.NewPepService(store),
	}

	// The form wizard needs a real terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
