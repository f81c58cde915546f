// Package domain holds DTOs for itinerary http and service contracts
package domain

import (
	"io"

	"itinerary/internal/core/normalize"
)

// MaxTextBytes caps the text endpoint payload
const MaxTextBytes = 1 << 20

// TextInput is recognized text submitted directly, skipping OCR
type TextInput struct {
	Text string `json:"text" validate:"required,notblank,max=1048576" example:"NAVIERA: MAERSK\nNAVE: PACIFIC STAR\nPOL: San Antonio\nETD: 05/03/2024"`
	// Name seeds the artifact file names; defaults to "itinerario"
	Name string `json:"name,omitempty" validate:"omitempty,max=120,filename" example:"booking_301W"`
}

// ImageInput is an uploaded scan; the caller owns Body
type ImageInput struct {
	Name string
	Body io.Reader
}

// ArtifactRef points at one rendered export
type ArtifactRef struct {
	ID          string `json:"id"           example:"2f1c0b8e-6a43-4d59-9a55-0b1f3c1c7a10"`
	Name        string `json:"name"         example:"booking_301W_datos.xlsx"`
	ContentType string `json:"content_type" example:"application/pdf"`
	Size        int64  `json:"size"         example:"5821"`
	Href        string `json:"href"         example:"/api/v1/itineraries/artifacts/2f1c0b8e-6a43-4d59-9a55-0b1f3c1c7a10"`
}

// Result is what both extraction endpoints return.
// Artifacts is keyed by format name (xlsx, pdf) and empty when the store is disabled
type Result struct {
	JobID     string                 `json:"job_id,omitempty" example:"5b0e3c8a-95c4-4c55-8d0c-2c9a7e0d1f42"`
	Source    string                 `json:"source"           example:"image"`
	Record    normalize.Record       `json:"record"`
	Artifacts map[string]ArtifactRef `json:"artifacts"`
}
