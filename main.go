package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parisxmas/OxiSign/internal/config"
	"github.com/parisxmas/OxiSign/internal/gelf"
	"github.com/parisxmas/OxiSign/internal/handler"
	"github.com/parisxmas/OxiSign/internal/pdf"
	"github.com/parisxmas/OxiSign/internal/router"
	"github.com/parisxmas/OxiSign/internal/service"
	"github.com/parisxmas/OxiSign/internal/store"
	"github.com/parisxmas/OxiSign/internal/yousign"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	// GELF UDP logging
	var gelfWriter *gelf.Writer
	if cfg.GelfAddr != "" {
		gelfWriter, err = gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
			gelfWriter = nil
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	template, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		log.Fatalf("Failed to read NDA template %s: %v", cfg.TemplatePath, err)
	}

	// Remote collaborators
	provider := yousign.New(cfg.YousignBaseURL, cfg.YousignAPIKey)
	statusStore := store.New(cfg.StoreURL, cfg.StoreToken)
	preparer := pdf.NewPreparer()

	// Services
	sigSvc := service.NewSignatureService(provider, preparer, template, cfg.PollMaxAttempts, cfg.PollInterval)
	statusSvc := service.NewStatusService(statusStore, provider)
	webhookSvc := service.NewWebhookService(statusStore)

	// Handlers
	sigH := handler.NewSignatureHandler(sigSvc)
	statusH := handler.NewStatusHandler(statusSvc)
	auditH := handler.NewAuditHandler(provider)
	webhookH := handler.NewWebhookHandler(webhookSvc)
	docH := handler.NewDocumentHandler(preparer, template)

	// Router
	r := router.New(sigH, statusH, auditH, webhookH, docH)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	go func() {
		log.Printf("OxiSign server starting on %s (provider %s, polling %dx%s)",
			cfg.HTTPAddr, cfg.YousignBaseURL, cfg.PollMaxAttempts, cfg.PollInterval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	// Give in-flight start-signature polls a chance to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Warning: shutdown: %v", err)
	}

	log.Printf("OxiSign server stopped")
	if gelfWriter != nil {
		log.SetOutput(os.Stderr)
		gelfWriter.Close()
	}
}
