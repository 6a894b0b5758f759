package router

import (
	"context"
	"net/http"
	"strings"

	"app/internal/api/v1/handler"
	"app/internal/cache"
	"app/internal/config"
	"app/internal/gateway"
	"app/internal/middleware"
	"app/internal/pubsub"
	"app/internal/secrets"
	"app/internal/service"
	"app/internal/staging"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, error) {
	logger.Info().Msg("Router initialized")
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// 1. Resolve the upstream service token. A Secret Manager reference takes
	// precedence over the plain env var.
	serviceToken := cfg.UpstreamServiceToken
	if cfg.UpstreamTokenSecretName != "" {
		manager, err := secrets.NewManager(context.Background(), cfg.GCPProjectID)
		if err != nil {
			logger.Fatal().Msgf("Failed to create Secret Manager client: %v", err)
			return nil, err
		}
		serviceToken, err = manager.AccessLatest(context.Background(), cfg.UpstreamTokenSecretName)
		if err != nil {
			logger.Fatal().Msgf("Failed to read upstream token secret: %v", err)
			return nil, err
		}
		if closeErr := manager.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("Failed to close Secret Manager client")
		}
	}

	// 2. Initialize S3 client for staged attachments
	s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		logger.Fatal().Msgf("Failed to load S3 config: %v", err)
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	})

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize Pub/Sub publisher. Fan-out is optional; without a project
	// ID mutations simply skip event publishing.
	var publisher pubsub.Publisher
	if cfg.GCPProjectID != "" {
		pubSubPublisher, err := pubsub.NewPublisher(context.Background(), cfg.GCPProjectID)
		if err != nil {
			logger.Fatal().Msgf("Failed to create Pub/Sub publisher: %v", err)
			return nil, err
		}
		publisher = pubSubPublisher
	}

	// 5. Initialize gateway, cache, staging store, services & handlers
	gw := gateway.NewClient(cfg.UpstreamBaseURL, serviceToken, logger)
	contentCache := cache.New(gw.GetChapters)
	stagingStore := staging.NewS3Store(s3Client, cfg.S3Bucket, logger)

	contentSvc := service.NewContentService(gw, contentCache, publisher, cfg.ContentEventsTopic, logger)
	authoringSvc := service.NewAuthoringService(gw, stagingStore, contentCache, publisher, cfg.ContentEventsTopic, logger)
	courseSvc := service.NewCourseService(gw, logger)

	contentHandler := handler.NewContentHandler(contentSvc, authoringSvc, validate)
	courseHandler := handler.NewCourseHandler(courseSvc, validate)

	// 6. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 7. Create ServeMux router
	mux := http.NewServeMux()
	contentHandler.RegisterRoutes(mux, authMiddleware)
	courseHandler.RegisterRoutes(mux, authMiddleware)

	// Add Swagger documentation
	mux.HandleFunc("/swagger/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger/swagger.json")
	})
	mux.Handle("/swagger/", http.StripPrefix("/swagger/", http.FileServer(http.Dir("./docs/swagger/swagger-ui"))))

	// Redirect /api/* to /v1/* for clients still on the old prefix
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/")
		http.Redirect(w, r, "/v1/"+rest, http.StatusMovedPermanently)
	})

	// 8. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	})

	return middleware.LoggerMiddleware(logger, c.Handler(mux)), nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
