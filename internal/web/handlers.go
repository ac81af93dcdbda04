package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/datasweeper/internal/core"
	"github.com/JonMunkholm/datasweeper/internal/logging"
	"github.com/JonMunkholm/datasweeper/internal/web/templates"
	"github.com/a-h/templ"
)

// nameForm is the display-name form.
type nameForm struct {
	Name string `form:"name" validate:"max=100"`
}

// handleDashboard renders the main page with every file of the workspace.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)

	alerts := s.takeFlashes(w, r)

	results, err := s.service.Process(ctx, ws)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	files := make([]templates.FileView, len(results))
	for i, res := range results {
		files[i] = s.fileView(res)
	}

	data := templates.DashboardData{
		Name:        ws.Name(),
		Alerts:      alerts,
		Files:       files,
		MaxFileSize: s.service.MaxFileSize(),
		MaxFiles:    s.cfg.Upload.MaxFiles,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.render(ctx, w, templates.Dashboard(data))
}

// fileView turns a pipeline result into what the dashboard shows.
func (s *Server) fileView(res core.Result) templates.FileView {
	v := templates.FileView{
		ID:      res.File.ID,
		Name:    res.File.Name,
		Size:    res.File.Size,
		Options: res.Options,
		Stats:   res.Stats,
	}

	if !res.OK() {
		msg := core.MapError(res.Err)
		alert := templates.Alert{Kind: "error", Message: msg.Message, Action: msg.Action, Code: msg.Code}
		if errors.Is(res.Err, core.ErrUnsupportedFileType) {
			ext := res.File.Ext
			if ext == "" {
				ext = "(none)"
			}
			alert.Message = fmt.Sprintf("%s: %s", msg.Message, ext)
		}
		v.Error = &alert
		return v
	}

	head := res.Table.Head(s.service.PreviewRows())
	v.Available = res.Cleaned.Names()
	v.Columns = core.Columns(res.Table)
	v.TotalRows = res.Table.Nrow()
	v.NoColumns = res.NoColumns()
	v.Legend = legend(res.Table)
	v.Rows = make([][]string, head.Nrow())
	for i := range v.Rows {
		v.Rows[i] = head.Row(i)
	}
	return v
}

// legend lists the columns the bar chart plots, colored as in the SVG.
func legend(t core.Table) []templates.LegendItem {
	numeric := t.NumericColumns()
	if len(numeric) > core.MaxChartColumns {
		numeric = numeric[:core.MaxChartColumns]
	}
	items := make([]templates.LegendItem, len(numeric))
	for i, name := range numeric {
		items[i] = templates.LegendItem{Name: name, Color: core.SeriesColor(i)}
	}
	return items
}

// handleSetName stores the display name shown on the dashboard.
func (s *Server) handleSetName(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}

	form := nameForm{Name: strings.TrimSpace(r.PostFormValue("name"))}
	if err := s.validate.Struct(form); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}

	workspaceFrom(r.Context()).SetName(form.Name)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// render writes a component, logging failures since headers are already sent.
func (s *Server) render(ctx context.Context, w http.ResponseWriter, c templ.Component) {
	if err := c.Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render page", "error", err)
	}
}
