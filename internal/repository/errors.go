package repository

import "errors"

// Record missing is a normal outcome, not a storage failure.
var ErrNotFound = errors.New("not found")

// Unique-constraint conflict (duplicate email, CPF, CNPJ, idempotency key).
var ErrDuplicate = errors.New("duplicate")
