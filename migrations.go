// Package webguard holds assets shared by the binaries of this module.
package webguard

import "embed"

// Migrations contains the goose SQL migrations applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
