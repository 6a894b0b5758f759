// Package secrets reads service credentials from GCP Secret Manager when the
// deployment prefers a secret reference over a plain env var.
package secrets

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// Manager is a read-only Secret Manager accessor scoped to one project.
type Manager struct {
	client    *secretmanager.Client
	projectID string
}

// NewManager creates a Manager for the given project.
func NewManager(ctx context.Context, projectID string, opts ...option.ClientOption) (*Manager, error) {
	if projectID == "" {
		return nil, fmt.Errorf("GCP project ID is required for Secret Manager")
	}
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &Manager{client: client, projectID: projectID}, nil
}

// AccessLatest returns the latest version of the named secret.
func (m *Manager) AccessLatest(ctx context.Context, name string) (string, error) {
	secretPath := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", m.projectID, name)
	resp, err := m.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretPath,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", name, err)
	}
	return string(resp.Payload.Data), nil
}

// Close releases the underlying client.
func (m *Manager) Close() error {
	return m.client.Close()
}
