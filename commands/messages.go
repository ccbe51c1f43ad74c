package commands

import (
	catalogcmd "github.com/goliatone/go-relnotes/internal/commands/catalog"
	notescmd "github.com/goliatone/go-relnotes/internal/commands/notes"
)

// Message payloads accepted by the built-in handlers, re-exported so hosts can
// dispatch them through their own go-command integrations.
type (
	LintFileCommand = notescmd.LintFileCommand
	LintTreeCommand = notescmd.LintTreeCommand
	ExtractCommand  = notescmd.ExtractCommand
	ScaffoldCommand = notescmd.ScaffoldCommand
	IndexCommand    = catalogcmd.IndexCommand
)

// Handler groupings returned by the per-module registration helpers.
type (
	NoteHandlerSet    = notescmd.HandlerSet
	CatalogHandlerSet = catalogcmd.HandlerSet
)
