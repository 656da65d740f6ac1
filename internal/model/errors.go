package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrExpired is returned when a session aged past the retention window
	// and was reaped on access.
	ErrExpired = errors.New("expired")
	// ErrPathEscape is returned when a path resolves outside its session
	// workspace.
	ErrPathEscape = errors.New("path escapes workspace")
	// ErrImageUnavailable is returned when the sandbox image is missing and
	// cannot be pulled.
	ErrImageUnavailable = errors.New("image unavailable")
	// ErrRuntimeUnavailable is returned when the container runtime cannot be
	// reached.
	ErrRuntimeUnavailable = errors.New("runtime unavailable")
)
