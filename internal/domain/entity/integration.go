package entity

// Estados de conexión de una integración externa.
const (
	IntegrationStatusConnected    = "connected"
	IntegrationStatusDisconnected = "disconnected"
)

// Direcciones de sincronización simulada.
const (
	SyncDirectionInbound  = "inbound"
	SyncDirectionOutbound = "outbound"
)

// Integration describe una conexión con un tercero contable o de pagos.
// No se persiste: el catálogo es estado externo simulado.
type Integration struct {
	ID       string
	Name     string
	Type     string // accounting, payments, banking
	Status   string // connected, disconnected
	Features []string
}
