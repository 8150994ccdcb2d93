package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio. El mapeo a códigos HTTP vive en la
// capa de interfaces, no aquí.
type Kind int

const (
	// KindValidation entrada malformada o incompleta (id no entero, cantidad
	// cero en un ajuste, motivo en blanco, reorder_min > reorder_max).
	KindValidation Kind = iota + 1
	// KindNotFound producto o ubicación referenciada no existe.
	KindNotFound
	// KindPreconditionFailed regla de dominio violada dentro de la transacción:
	// saldo insuficiente, ubicación inactiva, capacidad excedida, stock negativo.
	KindPreconditionFailed
	// KindConflict violación de unicidad (par producto+ubicación duplicado).
	KindConflict
)

// Error error de dominio etiquetado (sin dependencias externas).
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation construye un error de validación de entrada.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound construye un error de recurso no encontrado.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// PreconditionFailed construye un error de regla de dominio violada.
func PreconditionFailed(format string, args ...any) error {
	return &Error{Kind: KindPreconditionFailed, Message: fmt.Sprintf(format, args...)}
}

// Conflict construye un error de conflicto de unicidad.
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf devuelve el Kind del error, o 0 si no es un error de dominio.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// IsKind indica si err es un error de dominio del tipo dado.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
