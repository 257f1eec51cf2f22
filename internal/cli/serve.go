package cli

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/paisaledger/statement-extractor/internal/api"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the extraction HTTP API",
	Long: `Start the HTTP server exposing the extraction pipeline:

  POST /api/extract   multipart upload (pdf, csv, png, jpg)
  GET  /api/health    liveness check

Set STATIC_DIR to also serve the review UI.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.MaxUploadMB << 20,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	api.New(cfg, log).Register(app)

	log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
	return app.Listen(cfg.ListenAddr)
}
