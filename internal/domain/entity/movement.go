package entity

import "time"

// Tipos de movimiento de la bitácora.
const (
	MovementKindADJUST   = "ADJUST"   // ajuste con signo en una ubicación
	MovementKindTRANSFER = "TRANSFER" // traslado entre dos ubicaciones
)

// ActorSystem actor por defecto cuando la petición no trae usuario.
const ActorSystem = "system"

// Movement registro inmutable de la bitácora: una fila por mutación de stock.
// Para ADJUST se llena exactamente una de origen/destino (origen si la
// cantidad es negativa, destino si es positiva); para TRANSFER ambas.
// Nunca se actualiza ni se borra: es la fuente de verdad de los reportes.
type Movement struct {
	ID                    string // uuid
	ProductID             int64
	OriginLocationID      *int64
	DestinationLocationID *int64
	Kind                  string // ADJUST | TRANSFER
	Quantity              int64  // con signo, nunca cero
	Reason                string
	Actor                 string
	CreatedAt             time.Time
}
