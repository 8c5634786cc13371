// Package apperr defines the typed error taxonomy of the ledger and sale
// engines. Every failure crossing a service boundary is one of these kinds so
// that callers can distinguish recoverable validation problems from commit
// failures without string matching.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Validation: missing or invalid required field. Caller corrects and retries.
	Validation Kind = iota + 1
	// CarritoVacio: a sale was submitted with zero items.
	CarritoVacio
	// StockInsuficiente: requested quantity exceeds available stock.
	StockInsuficiente
	// NoEncontrado: stale reference; caller should refresh and retry.
	NoEncontrado
	// Conflicto: an optimistic stock precondition no longer held. Nothing was
	// persisted; retry against fresh data.
	Conflicto
	// CategoriaDesconocida: category outside the closed known set.
	CategoriaDesconocida
	// Commit: the underlying atomic write failed. No partial state was persisted.
	Commit
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validacion"
	case CarritoVacio:
		return "carrito_vacio"
	case StockInsuficiente:
		return "stock_insuficiente"
	case NoEncontrado:
		return "no_encontrado"
	case Conflicto:
		return "conflicto"
	case CategoriaDesconocida:
		return "categoria_desconocida"
	case Commit:
		return "commit"
	}
	return "desconocido"
}

// Error carries a kind, a user-presentable message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a kind and message. A nil err yields a plain Error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// Retryable reports whether the operation might succeed if simply retried
// against fresh data.
func Retryable(err error) bool {
	k := KindOf(err)
	return k == Conflicto || k == Commit || k == NoEncontrado
}
