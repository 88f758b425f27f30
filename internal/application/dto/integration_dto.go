package dto

// IntegrationResponse conexión del catálogo simulado.
type IntegrationResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Status   string   `json:"status"`
	Features []string `json:"features"`
}

// ConfigureIntegrationRequest body para POST /api/integrations.
type ConfigureIntegrationRequest struct {
	Integration string            `json:"integration"`
	Credentials map[string]string `json:"credentials"`
}

// ConfigureIntegrationResponse ack de configuración.
type ConfigureIntegrationResponse struct {
	Integration string `json:"integration"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

// SyncRequest body para PUT /api/integrations (sincronización simulada).
type SyncRequest struct {
	Integration string            `json:"integration"`
	Direction   string            `json:"direction"` // inbound | outbound
	EntityType  string            `json:"entity_type"`
	Filters     map[string]string `json:"filters,omitempty"`
}

// SyncResponse resultado de la sincronización simulada.
type SyncResponse struct {
	Integration string `json:"integration"`
	Direction   string `json:"direction"`
	EntityType  string `json:"entity_type"`
	Synced      int    `json:"synced"`
	Skipped     int    `json:"skipped"`
	Message     string `json:"message"`
}

// WebhookAck respuesta a un webhook entrante verificado.
type WebhookAck struct {
	Received bool   `json:"received"`
	EventID  string `json:"event_id,omitempty"`
}
