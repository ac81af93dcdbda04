package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/JonMunkholm/datasweeper/internal/core"
	"github.com/JonMunkholm/datasweeper/internal/logging"
)

// uploadField is the multipart field carrying the uploaded files.
const uploadField = "files"

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// handleUpload adds the posted files to the workspace. Each file is loaded
// once so decode errors show up next to the file right away.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)

	// Room for every file at the size limit plus multipart overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.service.MaxFileSize()*int64(s.cfg.Upload.MaxFiles)+1<<20)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, fmt.Errorf("%w: %v", core.ErrFileTooLarge, err))
			return
		}
		s.fail(w, r, fmt.Errorf("%w: parse upload form: %v", core.ErrNoFile, err))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logging.FromContext(ctx).Warn("remove multipart temp files", "error", err)
		}
	}()

	headers := r.MultipartForm.File[uploadField]
	files := make([]core.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		data, err := readUpload(fh)
		if err != nil {
			s.fail(w, r, fmt.Errorf("read %s: %w", fh.Filename, err))
			return
		}
		files = append(files, core.NewUploadedFile(fh.Filename, data))
	}

	reports, err := s.service.Upload(ctx, ws, files)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	logger := logging.WithFields(ctx, "workspace", ws.ID)
	for _, rep := range reports {
		if rep.Error != "" {
			logger.Info("file rejected", "file", rep.Name, "code", rep.ErrorCode, "error", rep.Error)
			continue
		}
		logger.Info("file loaded", "file", rep.Name, "size", rep.Size, "rows", rep.Rows, "columns", len(rep.Columns))
	}

	if wantsJSON(r) {
		writeJSON(w, r, http.StatusCreated, reports)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// readUpload reads one uploaded file into memory.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
