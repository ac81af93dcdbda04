package web

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/datasweeper/internal/core"
	"github.com/JonMunkholm/datasweeper/internal/logging"
	"github.com/go-chi/chi/v5"
)

// filesResponse is the body of GET /api/files.
type filesResponse struct {
	Name  string            `json:"name"`
	Files []core.FileReport `json:"files"`
}

// fileID returns the validated fileID URL parameter.
func (s *Server) fileID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "fileID")
	if err := s.validate.Var(id, "required,uuid"); err != nil {
		return "", fmt.Errorf("%w: %q", core.ErrFileNotFound, id)
	}
	return id, nil
}

// redirectToFile sends the browser back to the file's section.
func redirectToFile(w http.ResponseWriter, r *http.Request, id string) {
	http.Redirect(w, r, "/#file-"+id, http.StatusSeeOther)
}

// handleStage enables one cleaning stage for a file.
func (s *Server) handleStage(stage core.Stage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.fileID(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		ws := workspaceFrom(r.Context())
		if err := s.service.EnableStage(ws, id, stage); err != nil {
			s.fail(w, r, err)
			return
		}
		logging.WithFields(r.Context(), "workspace", ws.ID, "file", id).Info("stage enabled", "stage", stage)

		redirectToFile(w, r, id)
	}
}

// handleColumns sets the column selection. all=1 selects every column; a
// form with no columns checked is an explicit empty selection.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	id, err := s.fileID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}

	var columns []string
	if r.PostForm.Get("all") != "1" {
		columns = append([]string{}, r.PostForm["columns"]...)
		if err := s.validate.Var(columns, "dive,max=512"); err != nil {
			s.fail(w, r, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
			return
		}
	}

	if err := s.service.SelectColumns(workspaceFrom(r.Context()), id, columns); err != nil {
		s.fail(w, r, err)
		return
	}
	redirectToFile(w, r, id)
}

// handleShowChart turns the chart on (show=on) or off.
func (s *Server) handleShowChart(w http.ResponseWriter, r *http.Request) {
	id, err := s.fileID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	show := r.PostFormValue("show") == "on"
	if err := s.service.ShowChart(workspaceFrom(r.Context()), id, show); err != nil {
		s.fail(w, r, err)
		return
	}
	redirectToFile(w, r, id)
}

// handleRemove drops a file from the workspace.
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	id, err := s.fileID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.service.RemoveFile(workspaceFrom(r.Context()), id); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleChart serves the file's bar chart as SVG. Failures are logged and
// answered with a short text body; the page shows the image's alt text.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := s.fileID(r)
	if err != nil {
		http.Error(w, "Chart unavailable", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := s.service.WriteChart(ctx, workspaceFrom(ctx), id, &buf); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusUnprocessableEntity
		}
		logging.FromContext(ctx).Warn("chart unavailable", "file", id, "status", status, "error", err)
		http.Error(w, "Chart unavailable", status)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.FromContext(ctx).Warn("write chart", "error", err)
	}
}

// handleExport downloads the file's current table. The format query
// parameter defaults to the file's last used format.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)

	id, err := s.fileID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	param := r.URL.Query().Get("format")
	if param == "" {
		fs, err := ws.File(id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		param = string(fs.Options.Format)
	}
	format, err := core.ParseFormat(param)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	exp, err := s.service.Export(ctx, ws, id, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	logging.WithFields(ctx, "workspace", ws.ID, "file", id).Info("file exported",
		"format", format, "name", exp.Name, "bytes", len(exp.Data))

	w.Header().Set("Content-Type", exp.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": exp.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(exp.Data)))
	if _, err := w.Write(exp.Data); err != nil {
		logging.FromContext(ctx).Warn("write export", "error", err)
	}
}

// handleListFiles returns a report for every file of the workspace.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)

	reports, err := s.service.Reports(ctx, ws)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, filesResponse{Name: ws.Name(), Files: reports})
}
