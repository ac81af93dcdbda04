package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "unsupported extension maps correctly",
			err:         fmt.Errorf("load notes.txt: %w: .txt", ErrUnsupportedFileType),
			wantCode:    "FILE002",
			wantMessage: "Unsupported file type",
		},
		{
			name:        "malformed csv maps correctly",
			err:         fmt.Errorf("load a.csv: %w: row 3 has 4 fields, header has 2", ErrMalformedCSV),
			wantCode:    "FILE003",
			wantMessage: "File is not a valid CSV",
		},
		{
			name:        "malformed workbook maps correctly",
			err:         fmt.Errorf("load a.xlsx: %w: zip: not a valid zip file", ErrMalformedExcel),
			wantCode:    "FILE006",
			wantMessage: "File is not a readable Excel workbook",
		},
		{
			name:        "file too large maps correctly",
			err:         errors.New("file too large: 200MB exceeds limit"),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum upload size",
		},
		{
			name:        "workspace not found maps before file not found",
			err:         ErrWorkspaceNotFound,
			wantCode:    "WS001",
			wantMessage: "Your session has expired",
		},
		{
			name:        "file not found maps correctly",
			err:         fmt.Errorf("file 123: %w", ErrFileNotFound),
			wantCode:    "WS002",
			wantMessage: "File not found in your workspace",
		},
		{
			name:        "nothing to export maps correctly",
			err:         ErrNothingToExport,
			wantCode:    "EXP002",
			wantMessage: "There is nothing to export",
		},
		{
			name:        "unsupported export format maps correctly",
			err:         fmt.Errorf("%w: %q", ErrUnsupportedFormat, "PDF"),
			wantCode:    "EXP001",
			wantMessage: "Unsupported export format",
		},
		{
			name:        "busy limiter maps correctly",
			err:         ErrPipelineBusy,
			wantCode:    "PIPE001",
			wantMessage: "System is busy processing other files",
		},
		{
			name:        "deadline maps correctly",
			err:         fmt.Errorf("run pipeline: %w", context.DeadlineExceeded),
			wantCode:    "PIPE003",
			wantMessage: "Request timed out",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "invalid form value maps correctly",
			err:         fmt.Errorf("%w: name: max", ErrInvalidInput),
			wantCode:    "REQ001",
			wantMessage: "The request contained an invalid value",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("INVALID CSV: bare quote"),
			wantCode:    "FILE003",
			wantMessage: "File is not a valid CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrNoFile)

	expected := "No file was selected (Code: FILE004). Please select a CSV or Excel file to upload"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  ErrEmptyFile,
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
