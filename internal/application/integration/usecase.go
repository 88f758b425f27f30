// Package integration catálogo simulado de integraciones externas y
// recepción de webhooks firmados.
package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/webhook"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

// ReplayGuard deduplicación de eventos de webhook. MarkEvent devuelve
// false si el event_id ya se vio dentro de la ventana de replay.
type ReplayGuard interface {
	MarkEvent(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}

// catalogue integraciones disponibles. El estado connected se simula en
// memoria por proceso; no hay sincronización real contra terceros.
var catalogue = []entity.Integration{
	{ID: "siigo", Name: "Siigo", Type: "accounting", Status: entity.IntegrationStatusDisconnected, Features: []string{"invoices", "bills", "customers"}},
	{ID: "alegra", Name: "Alegra", Type: "accounting", Status: entity.IntegrationStatusDisconnected, Features: []string{"invoices", "customers"}},
	{ID: "wompi", Name: "Wompi", Type: "payments", Status: entity.IntegrationStatusDisconnected, Features: []string{"payments", "webhooks"}},
	{ID: "bancolombia", Name: "Bancolombia", Type: "banking", Status: entity.IntegrationStatusDisconnected, Features: []string{"statements"}},
}

// UseCase casos de uso de integraciones.
type UseCase struct {
	secret    string
	replayTTL time.Duration
	guard     ReplayGuard // nil deshabilita la deduplicación
	log       *logger.Logger

	// connected se consulta y muta desde handlers concurrentes; el estado
	// es por empresa para que una conexión no se filtre entre tenants.
	mu        sync.RWMutex
	connected map[string]map[string]bool // companyID -> integrationID
}

// NewUseCase construye el caso de uso. secret firma los webhooks
// entrantes; guard puede ser nil.
func NewUseCase(secret string, replayTTL time.Duration, guard ReplayGuard, log *logger.Logger) *UseCase {
	return &UseCase{
		secret:    secret,
		replayTTL: replayTTL,
		guard:     guard,
		log:       log,
		connected: make(map[string]map[string]bool),
	}
}

func (uc *UseCase) isConnected(companyID, integrationID string) bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.connected[companyID][integrationID]
}

// List devuelve el catálogo con el estado de conexión de la empresa.
func (uc *UseCase) List(_ context.Context, companyID string) []dto.IntegrationResponse {
	out := make([]dto.IntegrationResponse, 0, len(catalogue))
	for _, it := range catalogue {
		status := it.Status
		if uc.isConnected(companyID, it.ID) {
			status = entity.IntegrationStatusConnected
		}
		out = append(out, dto.IntegrationResponse{
			ID:       it.ID,
			Name:     it.Name,
			Type:     it.Type,
			Status:   status,
			Features: it.Features,
		})
	}
	return out
}

// Configure marca una integración del catálogo como conectada para la
// empresa. Las credenciales no se validan contra el tercero: la conexión
// es simulada.
func (uc *UseCase) Configure(_ context.Context, companyID string, req dto.ConfigureIntegrationRequest) (*dto.ConfigureIntegrationResponse, error) {
	if req.Integration == "" {
		return nil, fmt.Errorf("%w: integration es obligatorio", domain.ErrInvalidInput)
	}
	if !uc.known(req.Integration) {
		return nil, fmt.Errorf("%w: integración desconocida %q", domain.ErrInvalidInput, req.Integration)
	}
	if len(req.Credentials) == 0 {
		return nil, fmt.Errorf("%w: credentials no puede estar vacío", domain.ErrInvalidInput)
	}

	uc.mu.Lock()
	if uc.connected[companyID] == nil {
		uc.connected[companyID] = make(map[string]bool)
	}
	uc.connected[companyID][req.Integration] = true
	uc.mu.Unlock()

	uc.log.Info().Str("integration", req.Integration).Str("company_id", companyID).Msg("integración configurada")

	return &dto.ConfigureIntegrationResponse{
		Integration: req.Integration,
		Status:      entity.IntegrationStatusConnected,
		Message:     "integración configurada; la sincronización es simulada",
	}, nil
}

// Sync ejecuta una sincronización simulada. Valida integración y
// dirección pero no mueve datos.
func (uc *UseCase) Sync(_ context.Context, companyID string, req dto.SyncRequest) (*dto.SyncResponse, error) {
	if !uc.known(req.Integration) {
		return nil, fmt.Errorf("%w: integración desconocida %q", domain.ErrInvalidInput, req.Integration)
	}
	if req.Direction != entity.SyncDirectionInbound && req.Direction != entity.SyncDirectionOutbound {
		return nil, fmt.Errorf("%w: direction debe ser inbound u outbound", domain.ErrInvalidInput)
	}
	if !uc.isConnected(companyID, req.Integration) {
		return nil, fmt.Errorf("%w: la integración %s no está configurada", domain.ErrConflict, req.Integration)
	}

	uc.log.Info().
		Str("integration", req.Integration).
		Str("direction", req.Direction).
		Str("entity_type", req.EntityType).
		Msg("sincronización simulada")

	return &dto.SyncResponse{
		Integration: req.Integration,
		Direction:   req.Direction,
		EntityType:  req.EntityType,
		Synced:      0,
		Skipped:     0,
		Message:     "sincronización simulada; no se movieron datos",
	}, nil
}

// HandleWebhook valida la firma HMAC del payload y deduplica por
// event_id dentro de la ventana de replay. Una firma inválida nunca
// revela en qué falló.
func (uc *UseCase) HandleWebhook(ctx context.Context, provider string, payload []byte, signature, algorithm, eventID string) (*dto.WebhookAck, error) {
	if !webhook.VerifySignature(payload, signature, uc.secret, algorithm) {
		uc.log.Warn().Str("provider", provider).Msg("webhook con firma inválida rechazado")
		return nil, domain.ErrInvalidSignature
	}

	if eventID != "" && uc.guard != nil {
		fresh, err := uc.guard.MarkEvent(ctx, eventID, uc.replayTTL)
		if err != nil {
			// la deduplicación es best-effort: si el guard falla se procesa
			uc.log.Error().Err(err).Str("event_id", eventID).Msg("replay guard no disponible")
		} else if !fresh {
			uc.log.Warn().Str("provider", provider).Str("event_id", eventID).Msg("evento repetido descartado")
			return nil, domain.ErrReplayedEvent
		}
	}

	uc.log.Info().Str("provider", provider).Str("event_id", eventID).Int("payload_bytes", len(payload)).Msg("webhook recibido")
	return &dto.WebhookAck{Received: true, EventID: eventID}, nil
}

func (uc *UseCase) known(id string) bool {
	for _, it := range catalogue {
		if it.ID == id {
			return true
		}
	}
	return false
}
