package core

import "errors"

// Sentinel errors returned by the pipeline. Callers wrap them with context
// using %w; MapError turns the wrapped text into a UserMessage.
var (
	ErrNoFile              = errors.New("no file provided")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyFile           = errors.New("empty file")
	ErrMalformedCSV        = errors.New("invalid csv")
	ErrMalformedExcel      = errors.New("invalid excel workbook")
	ErrTooManyFiles        = errors.New("too many files in workspace")
	ErrFileNotLoaded       = errors.New("file could not be loaded")

	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrFileNotFound      = errors.New("file not found")

	ErrNoColumns         = errors.New("no columns selected")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNothingToExport   = errors.New("nothing to export")

	ErrPipelineBusy = errors.New("too many pipeline runs in progress, please try again later")
	ErrInvalidInput = errors.New("invalid input")
)
