package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/datasweeper/internal/config"
)

// Stage is a user-triggered cleaning stage.
type Stage string

const (
	StageCoerce Stage = "coerce"
	StageDedupe Stage = "dedupe"
	StageFill   Stage = "fill"
)

// Observer receives pipeline events, typically to record metrics.
type Observer interface {
	FileLoaded(ext string)
	FileRejected(code string)
	StageEnabled(stage Stage)
	Exported(format Format)
	RunCompleted(d time.Duration)
	Workspaces(live int)
}

type nopObserver struct{}

func (nopObserver) FileLoaded(string)          {}
func (nopObserver) FileRejected(string)        {}
func (nopObserver) StageEnabled(Stage)         {}
func (nopObserver) Exported(Format)            {}
func (nopObserver) RunCompleted(time.Duration) {}
func (nopObserver) Workspaces(int)             {}

// Service is the entry point for every workspace operation. It is safe for
// concurrent use; the pipeline for any one workspace runs sequentially.
type Service struct {
	store    *Store
	limiter  *RunLimiter
	observer Observer

	maxFileSize  int64
	previewRows  int
	chartMaxRows int
}

// Option configures a Service.
type Option func(*Service)

// WithObserver routes pipeline events to o.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewService creates a Service from configuration.
func NewService(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		store:        NewStore(cfg.Session.TTL, cfg.Upload.MaxFiles),
		limiter:      NewRunLimiter(cfg.Pipeline.MaxConcurrent, cfg.Pipeline.MaxWaitTime),
		observer:     nopObserver{},
		maxFileSize:  cfg.Upload.MaxFileSize,
		previewRows:  cfg.Pipeline.PreviewRows,
		chartMaxRows: cfg.Pipeline.ChartMaxRows,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PreviewRows is how many rows the dashboard shows per file.
func (s *Service) PreviewRows() int { return s.previewRows }

// ChartMaxRows is how many rows are plotted per chart.
func (s *Service) ChartMaxRows() int { return s.chartMaxRows }

// MaxFileSize is the per-file upload limit in bytes.
func (s *Service) MaxFileSize() int64 { return s.maxFileSize }

// Workspace returns a live workspace.
func (s *Service) Workspace(id string) (*Workspace, error) {
	return s.store.Get(id)
}

// OpenWorkspace returns the workspace for id, creating one when id is
// empty, unknown or expired.
func (s *Service) OpenWorkspace(id string) (*Workspace, bool) {
	ws, created := s.store.GetOrCreate(id)
	if created {
		s.observer.Workspaces(s.store.Len())
	}
	return ws, created
}

// Upload adds files to ws and returns a report for each. Oversized files
// fail the whole upload; files that cannot be decoded are kept and reported
// with their error so the user sees it next to the file.
func (s *Service) Upload(ctx context.Context, ws *Workspace, files []UploadedFile) ([]FileReport, error) {
	if len(files) == 0 {
		return nil, ErrNoFile
	}
	for _, f := range files {
		if s.maxFileSize > 0 && f.Size > s.maxFileSize {
			return nil, fmt.Errorf("%s: %w: %d bytes exceeds %d", f.Name, ErrFileTooLarge, f.Size, s.maxFileSize)
		}
	}
	if err := ws.Add(files...); err != nil {
		return nil, err
	}

	reports := make([]FileReport, 0, len(files))
	for _, f := range files {
		res, err := s.run(ctx, FileState{File: f, Options: DefaultOptions()})
		if err != nil {
			return reports, err
		}
		if res.OK() {
			s.observer.FileLoaded(f.Ext)
		} else {
			s.observer.FileRejected(MapError(res.Err).Code)
		}
		reports = append(reports, res.Report())
	}
	return reports, nil
}

// Process runs the pipeline over every file of ws in upload order.
func (s *Service) Process(ctx context.Context, ws *Workspace) ([]Result, error) {
	files := ws.Files()
	results := make([]Result, 0, len(files))
	for _, fs := range files {
		res, err := s.run(ctx, fs)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// ProcessFile runs the pipeline over one file of ws.
func (s *Service) ProcessFile(ctx context.Context, ws *Workspace, fileID string) (Result, error) {
	fs, err := ws.File(fileID)
	if err != nil {
		return Result{}, err
	}
	return s.run(ctx, fs)
}

// Reports summarizes every file of ws.
func (s *Service) Reports(ctx context.Context, ws *Workspace) ([]FileReport, error) {
	results, err := s.Process(ctx, ws)
	if err != nil {
		return nil, err
	}
	reports := make([]FileReport, len(results))
	for i, r := range results {
		reports[i] = r.Report()
	}
	return reports, nil
}

func (s *Service) run(ctx context.Context, fs FileState) (Result, error) {
	var res Result
	err := s.limiter.Do(ctx, func() error {
		start := time.Now()
		res = Run(fs.File, fs.Options)
		s.observer.RunCompleted(time.Since(start))
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("run pipeline: %w", err)
	}
	return res, nil
}

// EnableStage turns on a cleaning stage for a file. Stages stay enabled for
// the rest of the session.
func (s *Service) EnableStage(ws *Workspace, fileID string, stage Stage) error {
	var changed bool
	_, err := ws.Update(fileID, func(o *FileOptions) {
		switch stage {
		case StageCoerce:
			changed, o.CoerceNumeric = !o.CoerceNumeric, true
		case StageDedupe:
			changed, o.RemoveDuplicates = !o.RemoveDuplicates, true
		case StageFill:
			changed, o.FillMissing = !o.FillMissing, true
		}
	})
	if err != nil {
		return err
	}
	if changed {
		s.observer.StageEnabled(stage)
	}
	return nil
}

// SelectColumns sets a file's column selection. nil selects every column.
func (s *Service) SelectColumns(ws *Workspace, fileID string, columns []string) error {
	_, err := ws.Update(fileID, func(o *FileOptions) {
		o.Columns = columns
	})
	return err
}

// ShowChart sets whether a file's chart is shown.
func (s *Service) ShowChart(ws *Workspace, fileID string, show bool) error {
	_, err := ws.Update(fileID, func(o *FileOptions) {
		o.ShowChart = show
	})
	return err
}

// RemoveFile drops a file from ws.
func (s *Service) RemoveFile(ws *Workspace, fileID string) error {
	return ws.Remove(fileID)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Export renders a file's current table in format. The chosen format is
// remembered as the file's default.
func (s *Service) Export(ctx context.Context, ws *Workspace, fileID string, format Format) (ExportFile, error) {
	res, err := s.ProcessFile(ctx, ws, fileID)
	if err != nil {
		return ExportFile{}, err
	}

	var buf bytes.Buffer
	if err := res.Export(&buf, format); err != nil {
		return ExportFile{}, fmt.Errorf("export %s: %w", res.File.Name, err)
	}

	if _, err := ws.Update(fileID, func(o *FileOptions) { o.Format = format }); err != nil {
		return ExportFile{}, err
	}
	s.observer.Exported(format)

	return ExportFile{
		Name:        res.File.ExportName(format),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// WriteChart renders a file's chart as SVG to w.
func (s *Service) WriteChart(ctx context.Context, ws *Workspace, fileID string, w io.Writer) error {
	res, err := s.ProcessFile(ctx, ws, fileID)
	if err != nil {
		return err
	}
	data, ok := res.Chart(s.chartMaxRows)
	if !ok {
		return fmt.Errorf("chart %s: no numeric columns", res.File.Name)
	}
	return RenderChartSVG(w, data)
}

// LimiterStatus returns the pipeline limiter state.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForRuns blocks until in-flight pipeline runs finish or ctx is done.
func (s *Service) WaitForRuns(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// StartJanitor evicts idle workspaces until ctx is cancelled.
func (s *Service) StartJanitor(ctx context.Context, interval time.Duration) {
	s.store.StartJanitor(ctx, interval, s.observer.Workspaces)
}
