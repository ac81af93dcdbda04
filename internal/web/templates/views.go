// Package templates holds the templ components of the web UI.
//
// Components are written in the .templ files; the _templ.go files next to
// them are produced by templ generate and must not be edited by hand.
package templates

//go:generate templ generate

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/datasweeper/internal/core"
)

// AppName is shown in the page title and sidebar.
const AppName = "Data Sweeper"

// Alert is a user-facing message box.
type Alert struct {
	Kind    string // "error", "success" or "info"
	Message string
	Action  string
	Code    string
}

func (a Alert) class() string {
	kind := a.Kind
	if kind == "" {
		kind = "info"
	}
	return "alert alert-" + kind
}

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	Name        string
	Alerts      []Alert
	Files       []FileView
	MaxFileSize int64
	MaxFiles    int
}

// FileView is one uploaded file as shown on the dashboard.
type FileView struct {
	ID      string
	Name    string
	Size    int64
	Error   *Alert
	Options core.FileOptions
	Stats   core.CleanStats

	// Available lists the columns offered for selection.
	Available []string

	Columns   []core.ColumnInfo
	Rows      [][]string
	TotalRows int
	NoColumns bool

	// Legend names the plotted columns in chart order. Empty when the
	// selection has no numeric column.
	Legend []LegendItem
}

// LegendItem is one plotted column and its bar color.
type LegendItem struct {
	Name  string
	Color string
}

// Selected reports whether column name is part of the current selection.
func (f FileView) Selected(name string) bool {
	if f.Options.AllColumns() {
		return true
	}
	for _, c := range f.Options.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func (f FileView) base() string {
	return "/files/" + f.ID
}

func (f FileView) rowsHint() string {
	if len(f.Rows) < f.TotalRows {
		return fmt.Sprintf("Showing %d of %d rows", len(f.Rows), f.TotalRows)
	}
	return fmt.Sprintf("%d rows", f.TotalRows)
}

func columnTitle(c core.ColumnInfo) string {
	return string(c.Kind) + ", " + strconv.Itoa(c.Missing) + " missing"
}

func pageTitle(title string) string {
	if title == "" || title == AppName {
		return AppName
	}
	return title + " · " + AppName
}

func filesHeading(name string) string {
	if name == "" {
		return "Uploaded Files"
	}
	return "Uploaded Files by " + name
}

func uploadHint(d DashboardData) string {
	return fmt.Sprintf("Up to %s per file, %d files per session.", FormatKB(d.MaxFileSize), d.MaxFiles)
}

// FormatKB formats a byte count the way the file header shows it.
func FormatKB(size int64) string {
	return fmt.Sprintf("%.2f KB", float64(size)/1024)
}
