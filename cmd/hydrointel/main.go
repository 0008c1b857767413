package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"github.com/jeevananthan-98/Hydrointel/internal/api"
	"github.com/jeevananthan-98/Hydrointel/internal/backend"
	"github.com/jeevananthan-98/Hydrointel/internal/config"
	"github.com/jeevananthan-98/Hydrointel/internal/dashboard"
	"github.com/jeevananthan-98/Hydrointel/internal/i18n"
)

func main() {
	var cfg config.Config
	kong.Parse(&cfg,
		kong.Name("hydrointel"),
		kong.Description("Groundwater monitoring dashboard."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	tr, err := i18n.New(cfg.Lang)
	if err != nil {
		log.Fatalf("language %q: %v (available: %v)", cfg.Lang, err, i18n.Languages())
	}

	if !cfg.BackendConfigured() {
		log.Printf("backend address is the placeholder; predictions are disabled until HYDROINTEL_BACKEND_URL is set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coord := dashboard.New(backend.New(cfg.BackendURL), cfg.BackendConfigured())
	coord.Mount(ctx)

	server := api.NewServer(coord, &cfg, tr)
	log.Printf("hydrointel listening on %s (lang=%s)", cfg.Listen, tr.Lang())
	if err := server.Run(ctx, cfg.Listen); err != nil {
		log.Fatal(err)
	}
	log.Print("shutdown complete")
}
