// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import "errors"

// Sentinel errors for pathtemplate operations.
var (
	// ErrPattern indicates malformed pattern, unresolved or cyclic reference.
	ErrPattern = errors.New("invalid pattern")
	// ErrParse indicates path that does not satisfy template grammar or anchor.
	ErrParse = errors.New("parse failed")
	// ErrFormat indicates data missing a key required outside optional segments.
	ErrFormat = errors.New("format failed")
	// ErrNotFound indicates template name lookup miss.
	ErrNotFound = errors.New("template not found")
	// ErrNoMatch is wrapped together with ErrParse or ErrFormat when no template succeeded.
	ErrNoMatch = errors.New("no template matched")
	// ErrInvalidTemplate indicates nil template or template with empty name.
	ErrInvalidTemplate = errors.New("invalid template")
	// ErrDuplicateName indicates template name collision inside schema.
	ErrDuplicateName = errors.New("duplicate template name")
	// ErrInvalidDefinition indicates malformed declarative schema definition.
	ErrInvalidDefinition = errors.New("invalid schema definition")
	// ErrInvalidExtension indicates empty discovery extension list after normalization.
	ErrInvalidExtension = errors.New("invalid extension")
)
