package module

import "itinerary/internal/services/api/itineraries/domain"

// Ports is what the itineraries module offers other modules
type Ports struct {
	Extractor domain.ServicePort
}
