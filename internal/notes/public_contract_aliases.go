package notes

import relnotes "github.com/goliatone/go-relnotes/notes"

type (
	ReleaseNote = relnotes.ReleaseNote
	Section     = relnotes.Section
	Link        = relnotes.Link
	Service     = relnotes.Service
	ParseError  = relnotes.ParseError
)

var (
	ErrDocumentRequired = relnotes.ErrDocumentRequired
	ErrEmptyDocument    = relnotes.ErrEmptyDocument
	ErrNoReleaseHeading = relnotes.ErrNoReleaseHeading
	ErrVersionMismatch  = relnotes.ErrVersionMismatch
)
