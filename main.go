package main

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"upi-service/config"
	"upi-service/handlers"
	"upi-service/logging"
	"upi-service/monitoring"
	"upi-service/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	otlpEndpoint := ""
	if cfg.OTELEnabled {
		otlpEndpoint = cfg.OTELEndpoint
	}

	// Initialize structured logging
	if err := logging.InitLogger(cfg.ServiceName, otlpEndpoint); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logging.Sync()
	defer func() {
		if err := logging.Shutdown(context.Background()); err != nil {
			logging.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Initialize OpenTelemetry
	var tracer trace.Tracer = noop.NewTracerProvider().Tracer(cfg.ServiceName)
	if cfg.OTELEnabled {
		tp, t, err := monitoring.InitTracer(cfg.ServiceName, cfg.OTELEndpoint)
		if err != nil {
			logging.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		tracer = t
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logging.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()

		mp, _, err := monitoring.InitMeter(cfg.ServiceName, cfg.OTELEndpoint)
		if err != nil {
			logging.Fatal("Failed to initialize meter", zap.Error(err))
		}
		defer func() {
			if err := mp.Shutdown(context.Background()); err != nil {
				logging.Error("Error shutting down meter provider", zap.Error(err))
			}
		}()
	} else {
		logging.Warn("OpenTelemetry disabled, tracing and metrics export are off")
	}

	// Initialize service layer
	upiService := service.NewUPIService(tracer)

	// Initialize handlers
	upiHandler := handlers.NewUPIHandler(upiService)

	// Setup Gin router
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	// OpenTelemetry middleware
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMetricsMiddleware())

	// Routes
	upiHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Start server
	logging.Info("UPI service starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logging.Fatal("Failed to start server", zap.Error(err))
	}
}

// httpMetricsMiddleware records HTTP request metrics
func httpMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		// Record duration
		duration := float64(time.Since(start).Milliseconds())

		monitoring.HTTPServerDuration.Record(c.Request.Context(), duration,
			metric.WithAttributes(
				attribute.String("http_method", c.Request.Method),
				attribute.String("http_route", c.FullPath()),
				attribute.String("http_status_code", strconv.Itoa(c.Writer.Status())),
			),
		)
	}
}
