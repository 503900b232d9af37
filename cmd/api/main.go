package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/nomnom/order-service/internal/aws"
	"github.com/nomnom/order-service/internal/cart"
	"github.com/nomnom/order-service/internal/delivery"
	"github.com/nomnom/order-service/internal/handlers"
	"github.com/nomnom/order-service/internal/idempotency"
	"github.com/nomnom/order-service/internal/orders"
)

const outboundTimeout = 5 * time.Second

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "https://www.nomnom.eats"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterOrderRoutes(r, cfg)

	return r
}

func main() {
	// .env is optional; real environments inject variables directly.
	_ = godotenv.Load()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	ordersTable := os.Getenv("ORDERS_TABLE")
	idempTable := os.Getenv("IDEMPOTENCY_TABLE")
	queueURL := os.Getenv("ORDER_EVENTS_QUEUE_URL")
	cartURL := os.Getenv("CART_SERVICE_URL")
	deliveryURL := os.Getenv("DELIVERY_SERVICE_URL")
	metricsNS := os.Getenv("METRICS_NAMESPACE")
	if metricsNS == "" {
		metricsNS = "NomNom/OrderService"
	}

	store := orders.NewStore(clients.DynamoDB, ordersTable)

	svcCfg := orders.ServiceConfig{
		Store:            store,
		Cart:             cart.NewClient(cartURL, outboundTimeout),
		Delivery:         delivery.NewClient(deliveryURL, outboundTimeout),
		Metrics:          aws.NewMetricsEmitter(clients.CloudWatch, metricsNS),
		IdempotencyTable: idempTable,
		DispatchTimeout:  outboundTimeout,
	}
	if queueURL != "" {
		svcCfg.Events = aws.NewPublisher(clients.SQS, queueURL)
	}

	cfg := handlers.HandlerConfig{
		Service: orders.NewService(svcCfg),
	}
	if idempTable != "" {
		cfg.Idempotency = idempotency.NewStore(clients.DynamoDB, idempTable)
	}

	r := setupRouter(cfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := ":8080"
		if p := os.Getenv("PORT"); p != "" {
			addr = ":" + p
		}
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
