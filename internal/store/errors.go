package store

import "errors"

// ErrNaoEncontrado is returned when a row does not exist in the caller's filial.
var ErrNaoEncontrado = errors.New("registro não encontrado")

// ErrConflito is returned on unique-constraint violations (duplicate slug, duplicate document).
var ErrConflito = errors.New("registro conflitante já existe")
