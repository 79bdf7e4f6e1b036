package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations can live in subpackages (e.g., postgres) inside this directory.

// ErrDuplicate is returned when an insert or update violates a uniqueness
// constraint (VAT number, username, storage path). Implementations translate
// their store-specific error into this sentinel so services never inspect
// driver errors.
var ErrDuplicate = errors.New("duplicate entity")
