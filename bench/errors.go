// SPDX-License-Identifier: MIT
// Package bench: error taxonomy.
//
// Sentinels identify the category; the typed errors (AllocationError,
// OperationError, ConversionError) carry context and unwrap to BOTH their
// category sentinel and the underlying cause, so
//
//	errors.Is(err, ErrOperation) && errors.Is(err, ErrSingular)
//
// holds for a singular-matrix failure reported by any adapter.

package bench

import (
	"errors"
	"fmt"
)

// Category sentinels.
var (
	// ErrAllocation marks a matrix that could not be created (bad shape or out of memory).
	ErrAllocation = errors.New("bench: allocation failed")

	// ErrOperation marks a numeric operation that failed for a mathematical reason.
	ErrOperation = errors.New("bench: operation failed")

	// ErrConversion marks a canonical/native round-trip that produced the wrong shape.
	ErrConversion = errors.New("bench: conversion failed")
)

// Cause sentinels shared by adapters.
var (
	// ErrUnsupported is returned when an adapter does not implement an operation.
	ErrUnsupported = errors.New("bench: operation not supported by library")

	// ErrSingular reports a singular input.
	ErrSingular = errors.New("bench: singular matrix")

	// ErrNotPositiveDefinite reports an input that must be SPD but is not.
	ErrNotPositiveDefinite = errors.New("bench: matrix not positive definite")

	// ErrNoConvergence reports an iterative routine that gave up.
	ErrNoConvergence = errors.New("bench: no convergence")

	// ErrShapeMismatch reports operand shapes the operation cannot accept.
	ErrShapeMismatch = errors.New("bench: shape mismatch")

	// ErrNativePanic reports a panic recovered from native library code.
	ErrNativePanic = errors.New("bench: library panicked")
)

// Contract sentinels (programming errors surfaced as errors or panics).
var (
	// ErrForeignHandle is the panic value cause when a handle reaches an adapter that did not create it.
	ErrForeignHandle = errors.New("bench: handle belongs to another adapter")

	// ErrArity reports an inputs/outputs slice whose length disagrees with OperationSpec.
	ErrArity = errors.New("bench: wrong number of matrices")

	// ErrUnknownOperation reports an invalid OperationKind or name.
	ErrUnknownOperation = errors.New("bench: unknown operation")

	// ErrInvalidTrial reports a Trial that fails validation.
	ErrInvalidTrial = errors.New("bench: invalid trial")
)

// AllocationError reports a failed Create/ToNative allocation.
type AllocationError struct {
	Library    LibraryID
	Rows, Cols int
	Err        error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%s: allocate %dx%d: %v", e.Library, e.Rows, e.Cols, e.Err)
}

// Unwrap exposes ErrAllocation and the cause.
func (e *AllocationError) Unwrap() []error { return []error{ErrAllocation, e.Err} }

// OperationError reports a numeric failure inside Process.
type OperationError struct {
	Library   LibraryID
	Operation OperationKind
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Library, e.Operation, e.Err)
}

// Unwrap exposes ErrOperation and the cause.
func (e *OperationError) Unwrap() []error { return []error{ErrOperation, e.Err} }

// ConversionError reports a broken canonical/native conversion.
// Direction is "to-native" or "to-canonical".
type ConversionError struct {
	Library   LibraryID
	Direction string
	Err       error
}

// Conversion directions.
const (
	DirToNative    = "to-native"
	DirToCanonical = "to-canonical"
)

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Library, e.Direction, e.Err)
}

// Unwrap exposes ErrConversion and the cause.
func (e *ConversionError) Unwrap() []error { return []error{ErrConversion, e.Err} }

// NewOperationError builds an *OperationError for lib/kind.
func NewOperationError(lib LibraryID, kind OperationKind, cause error) error {
	return &OperationError{Library: lib, Operation: kind, Err: cause}
}

// NewAllocationError builds an *AllocationError.
func NewAllocationError(lib LibraryID, rows, cols int, cause error) error {
	return &AllocationError{Library: lib, Rows: rows, Cols: cols, Err: cause}
}

// NewConversionError builds a *ConversionError.
func NewConversionError(lib LibraryID, dir string, cause error) error {
	return &ConversionError{Library: lib, Direction: dir, Err: cause}
}

// isTaxonomy reports whether err already carries a category sentinel.
func isTaxonomy(err error) bool {
	return errors.Is(err, ErrOperation) || errors.Is(err, ErrAllocation) || errors.Is(err, ErrConversion)
}
