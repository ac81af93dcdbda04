// Package core provides the business logic for the data sweeper pipeline.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: upload exceeds the size limit
//	          Patterns: "file too large", "request body too large"
//	FILE002 - Unsupported type: extension is not .csv or .xlsx
//	          Patterns: "unsupported file type"
//	FILE003 - Invalid CSV: content could not be parsed as CSV
//	          Patterns: "invalid csv"
//	FILE004 - No file: nothing was selected
//	          Patterns: "no file provided"
//	FILE005 - Empty file: no header row
//	          Patterns: "empty file"
//	FILE006 - Invalid workbook: content could not be read as .xlsx
//	          Patterns: "invalid excel workbook"
//	FILE007 - Workspace full: too many files uploaded
//	          Patterns: "too many files"
//	FILE008 - Not loaded: the file failed to load earlier
//	          Patterns: "file could not be loaded"
//
// # Workspace Errors (WS001-WS099)
//
//	WS001 - Session expired: workspace not found
//	        Patterns: "workspace not found"
//	WS002 - File not found: file id is not in the workspace
//	        Patterns: "file not found"
//
// # Column / Export Errors (COL001, EXP001-EXP002)
//
//	COL001 - No columns selected
//	         Patterns: "no columns selected"
//	EXP001 - Unsupported export format
//	         Patterns: "unsupported export format"
//	EXP002 - Nothing to export
//	         Patterns: "nothing to export"
//
// # Pipeline / Request Errors (PIPE001-PIPE003, RATE001)
//
//	PIPE001 - System busy: no pipeline slot became free in time
//	          Patterns: "too many pipeline runs"
//	PIPE002 - Request cancelled
//	          Patterns: "context canceled"
//	PIPE003 - Request timed out
//	          Patterns: "context deadline exceeded"
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//	REQ001  - Invalid form or query value
//	          Patterns: "invalid input"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the application logs for the
// original technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE008)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller parts",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller parts",
			Code:    "FILE001",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "Unsupported file type",
			Action:  "Upload a .csv or .xlsx file",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated with no more fields per row than the header",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV or Excel file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a file with a header row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "invalid excel workbook",
		msg: UserMessage{
			Message: "File is not a readable Excel workbook",
			Action:  "Re-save the workbook as .xlsx and try again",
			Code:    "FILE006",
		},
	},
	{
		pattern: "too many files",
		msg: UserMessage{
			Message: "Your workspace already holds the maximum number of files",
			Action:  "Remove a file before uploading another",
			Code:    "FILE007",
		},
	},
	{
		pattern: "file could not be loaded",
		msg: UserMessage{
			Message: "This file could not be loaded",
			Action:  "Fix the file and upload it again",
			Code:    "FILE008",
		},
	},

	// =========================================================================
	// Workspace Errors (WS001-WS002)
	// =========================================================================
	{
		pattern: "workspace not found",
		msg: UserMessage{
			Message: "Your session has expired",
			Action:  "Upload your files again",
			Code:    "WS001",
		},
	},
	{
		pattern: "file not found",
		msg: UserMessage{
			Message: "File not found in your workspace",
			Action:  "Reload the page; the file may have been removed",
			Code:    "WS002",
		},
	},

	// =========================================================================
	// Column and Export Errors (COL001, EXP001-EXP002)
	// =========================================================================
	{
		pattern: "no columns selected",
		msg: UserMessage{
			Message: "No columns are selected",
			Action:  "Choose at least one column",
			Code:    "COL001",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "Unsupported export format",
			Action:  "Choose CSV or Excel",
			Code:    "EXP001",
		},
	},
	{
		pattern: "nothing to export",
		msg: UserMessage{
			Message: "There is nothing to export",
			Action:  "Select at least one column before converting",
			Code:    "EXP002",
		},
	},

	// =========================================================================
	// Pipeline and Request Errors (PIPE001-PIPE003, RATE001)
	// =========================================================================
	{
		pattern: "too many pipeline runs",
		msg: UserMessage{
			Message: "System is busy processing other files",
			Action:  "Please wait a moment and try again",
			Code:    "PIPE001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "PIPE002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "PIPE003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "invalid input",
		msg: UserMessage{
			Message: "The request contained an invalid value",
			Action:  "Check the form and try again",
			Code:    "REQ001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or ERR000 when nothing matches.
//
//	msg := MapError(fmt.Errorf("load notes.txt: %w", ErrUnsupportedFileType))
//	// msg.Code == "FILE002"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
