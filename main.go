package main

import (
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"report-triage-service/classifier"
	"report-triage-service/config"
	"report-triage-service/database"
	"report-triage-service/handlers"
	"report-triage-service/metrics"
	"report-triage-service/middleware"
	"report-triage-service/rabbitmq"
	"report-triage-service/services"
	"report-triage-service/utils"
)

const (
	EndPointHealth       = "/health"
	EndPointReports      = "/reports"
	EndPointReport       = "/reports/:id"
	EndPointReportImage  = "/reports/:id/image"
	EndPointReportStatus = "/reports/:id/status"
	EndPointStats        = "/stats"
	EndPointWSReports    = "/ws/reports"
	EndPointWSHealth     = "/ws/health"
	EndPointMetrics      = "/metrics"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using system environment variables")
	}

	cfg := config.Load()

	log.Info("Starting the report triage service...")

	// Connect to database
	db, err := utils.DBConnect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	metrics.Register()

	// Severity classifier: remote model API when configured, the
	// deterministic stub otherwise.
	var cls classifier.Classifier
	if cfg.ClassifierURL != "" {
		cls = classifier.NewModelAPIClient(cfg.ClassifierURL, cfg.ClassifierAPIKey, cfg.ClassifierTimeout)
	} else {
		log.Warn("CLASSIFIER_URL not set, using the stub classifier")
		cls = classifier.NewStubClient()
	}
	log.Infof("Severity classifier provider=%s", cls.SourceName())

	// RabbitMQ publisher for submitted reports. Optional: submission
	// works without it.
	var publisher services.ReportPublisher
	if cfg.AMQPURL != "" {
		amqpPublisher, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			log.Errorf("Failed to initialize RabbitMQ publisher: %v. Reports will not be published.", err)
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	}

	// Initialize services
	reportService := database.NewReportService(db)
	websocketHub := services.NewWebSocketHub()
	go websocketHub.Start()
	defer websocketHub.Stop()

	triageService := services.NewTriageService(
		reportService, cls, publisher, websocketHub, cfg.ClassifierTimeout, cfg.Timezone())

	// Initialize handlers
	triageHandler := handlers.NewTriageHandler(triageService)
	websocketHandler := handlers.NewWebSocketHandler(websocketHub)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public endpoints
	router.GET(EndPointHealth, triageHandler.HealthCheck)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))

	// Protected endpoints
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.POST(EndPointReports, triageHandler.SubmitReport)
		protected.GET(EndPointReports, triageHandler.GetReports)
		protected.GET(EndPointReport, triageHandler.GetReport)
		protected.GET(EndPointReportImage, triageHandler.GetReportImage)
		protected.POST(EndPointReportStatus, triageHandler.UpdateStatus)
		protected.GET(EndPointStats, triageHandler.GetStats)
		protected.GET(EndPointWSReports, websocketHandler.ListenReports)
		protected.GET(EndPointWSHealth, websocketHandler.HealthCheck)
	}

	log.Infof("Starting report triage service on :%s", cfg.Port)
	router.Run(":" + cfg.Port)
	log.Info("Finished the service. Should not ever being seen.")
}
