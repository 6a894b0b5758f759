package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Upstream course-platform API. The service token authenticates calls made
	// outside a caller's request context (e.g. debounced typeahead fetches);
	// UpstreamTokenSecretName, when set, overrides UpstreamServiceToken with a
	// Secret Manager lookup at startup.
	UpstreamBaseURL         string `envconfig:"UPSTREAM_BASE_URL" required:"true"`
	UpstreamServiceToken    string `envconfig:"UPSTREAM_SERVICE_TOKEN"`
	UpstreamTokenSecretName string `envconfig:"UPSTREAM_TOKEN_SECRET_NAME"`

	// S3-compatible storage for staged lesson attachments.
	S3URL       string `envconfig:"STAGING_S3_URL" required:"true"`
	S3Bucket    string `envconfig:"STAGING_S3_BUCKET" required:"true"`
	S3Region    string `envconfig:"STAGING_S3_REGION" required:"true"`
	S3AccessKey string `envconfig:"STAGING_S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `envconfig:"STAGING_S3_SECRET_KEY" required:"true"`

	// Content-event fan-out.
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	ContentEventsTopic string `envconfig:"CONTENT_EVENTS_TOPIC" default:"content-events"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
