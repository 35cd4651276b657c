package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ItsAzni/pakasir-sdk-go/internal/api"
	"github.com/ItsAzni/pakasir-sdk-go/internal/config"
	"github.com/ItsAzni/pakasir-sdk-go/internal/logging"
	prometheus_monitoring "github.com/ItsAzni/pakasir-sdk-go/internal/monitoring"
	"github.com/ItsAzni/pakasir-sdk-go/internal/orderid"
	"github.com/ItsAzni/pakasir-sdk-go/pakasir"
)

const pakasirTimeout = 30 * time.Second

func main() {
	fmt.Printf("Pakasir Gateway - Version %s\n", version)

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Printf("Failed to get config path: %v\n", err)
		os.Exit(configPathErr)
	}

	err = config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(configLoadErr)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Printf("Failed to get config from env: %v\n", err)
		os.Exit(configGetErr)
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(loggerErr)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	log.Info("starting server",
		zap.String("config_path", configPath),
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("slug", cfg.Pakasir.Slug),
		zap.String("api_key", logging.MaskAPIKey(cfg.Pakasir.APIKey)),
		zap.Bool("mocked", cfg.Mocked),
	)

	var apiService api.ApiServicer
	if cfg.Mocked {
		apiService = api.NewMockedApiService()
	} else {
		httpClient := prometheus_monitoring.InstrumentClient(&http.Client{Timeout: pakasirTimeout})
		pakasirService, err := pakasir.New(
			cfg.Pakasir.Slug,
			cfg.Pakasir.APIKey,
			pakasir.WithHTTPClient(httpClient),
			pakasir.WithLogger(log.Named("pakasir")),
			pakasir.WithBaseURL(cfg.Pakasir.BaseURL),
		)
		if err != nil {
			log.Error("failed to create Pakasir service", zap.Error(err))
			os.Exit(pakasirErr)
		}

		apiService = api.NewApiService(
			pakasirService,
			pakasir.NewVerifyingWebhookHandler(pakasirService),
			orderid.New(),
			log.Named("api"),
		)
	}

	router := api.NewRouter(apiService)
	prometheus_monitoring.SetGatewayStatus(1)

	hostString := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := http.Server{
		Addr:    hostString,
		Handler: router,
	}
	err = server.ListenAndServe()
	if err != nil {
		log.Error("error starting server", zap.Error(err))
		os.Exit(serverErr)
	}

	os.Exit(successCode)
}
