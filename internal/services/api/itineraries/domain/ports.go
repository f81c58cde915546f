package domain

import (
	"context"
	"io"

	"itinerary/internal/platform/store"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	FromImage(ctx context.Context, in ImageInput) (Result, error)
	FromText(ctx context.Context, in TextInput) (Result, error)
	Artifact(ctx context.Context, id string) (store.Artifact, io.ReadCloser, error)
}
