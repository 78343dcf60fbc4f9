package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dharsanguruparan/PaperProbe/internal/logger"
	"github.com/dharsanguruparan/PaperProbe/internal/model"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
)

// fileSeq is shared by every Ingestor so ids stay unique process-wide.
var fileSeq atomic.Uint64

// Upload is a file offered for ingestion. Open is called at most once, after
// the file has been admitted, to read its content for metadata.
type Upload struct {
	Name string
	Size int64
	Type string
	Open func() (io.ReadCloser, error)
}

// FromPath describes a local file as an Upload. The declared type comes from
// the extension, like a browser would report it.
func FromPath(path string) (Upload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Upload{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Upload{}, fmt.Errorf("%s is a directory", path)
	}
	return Upload{
		Name: filepath.Base(path),
		Size: info.Size(),
		Type: mime.TypeByExtension(filepath.Ext(path)),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// Rejection records why a file was refused.
type Rejection struct {
	Name       string
	Violations []string
}

// Result summarizes one Upload call.
type Result struct {
	Accepted []string
	Rejected []Rejection
}

// Ingestor validates uploads and admits them into the store.
type Ingestor struct {
	store       *state.Store
	log         *logger.Logger
	workers     int
	autoAnalyze func(ids []string)
	wg          sync.WaitGroup
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithWorkers bounds concurrent metadata extraction.
func WithWorkers(n int) Option {
	return func(in *Ingestor) {
		if n > 0 {
			in.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(in *Ingestor) { in.log = l }
}

// WithAutoAnalyze registers the hook run with the accepted ids when the
// AutoAnalyze preference is on.
func WithAutoAnalyze(fn func(ids []string)) Option {
	return func(in *Ingestor) { in.autoAnalyze = fn }
}

// New creates an Ingestor bound to store.
func New(store *state.Store, opts ...Option) *Ingestor {
	in := &Ingestor{store: store, workers: 4}
	for _, opt := range opts {
		opt(in)
	}
	in.log = logger.OrNop(in.log).Named("ingest")
	return in
}

type admitted struct {
	id     string
	upload Upload
}

// Upload validates every file, raises one error notification per rejected
// file and admits the rest with a single AddFiles command. Metadata is
// extracted afterwards in the background; call Wait to block until it has
// been merged.
func (in *Ingestor) Upload(ctx context.Context, uploads []Upload) Result {
	var res Result
	prefs := in.store.Snapshot().Preferences

	var batch []admitted
	for _, up := range uploads {
		violations := Validate(Candidate{Name: up.Name, Size: up.Size, Type: up.Type}, prefs)
		if len(violations) > 0 {
			res.Rejected = append(res.Rejected, Rejection{Name: up.Name, Violations: violations})
			continue
		}
		batch = append(batch, admitted{id: model.FileID(up.Name, fileSeq.Add(1)), upload: up})
	}

	for _, r := range res.Rejected {
		in.log.Info("file rejected", "name", r.Name, "violations", r.Violations)
		in.store.Dispatch(state.AddNotification{
			Kind:    model.NotifyError,
			Title:   "File Upload Error",
			Message: fmt.Sprintf("%s: %s", r.Name, strings.Join(r.Violations, ", ")),
		})
	}
	if len(batch) == 0 {
		return res
	}

	records := make([]model.FileRecord, 0, len(batch))
	for _, a := range batch {
		records = append(records, model.FileRecord{
			ID:   a.id,
			Name: a.upload.Name,
			Size: a.upload.Size,
			Type: a.upload.Type,
		})
		res.Accepted = append(res.Accepted, a.id)
	}
	in.store.Dispatch(state.AddFiles{Files: records})

	in.wg.Add(1)
	go func() {
		defer in.wg.Done()
		in.extractAll(ctx, batch)
	}()

	in.store.Dispatch(state.AddNotification{
		Kind:    model.NotifySuccess,
		Title:   "Files Uploaded",
		Message: fmt.Sprintf("Successfully uploaded %d file(s)", len(batch)),
	})
	if prefs.AutoAnalyze && in.autoAnalyze != nil {
		in.autoAnalyze(res.Accepted)
	}
	return res
}

// Wait blocks until all background metadata extraction has finished.
func (in *Ingestor) Wait() {
	in.wg.Wait()
}

// extractAll never fails: unreadable files keep their metadata unset.
func (in *Ingestor) extractAll(ctx context.Context, batch []admitted) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)
	for _, a := range batch {
		a := a
		g.Go(func() error {
			md, err := readMetadata(gctx, a.upload)
			if err != nil {
				in.log.Warn("failed to extract metadata", "file_id", a.id, "name", a.upload.Name, "error", err)
				return nil
			}
			in.store.Dispatch(state.UpdateFileProgress{ID: a.id, Metadata: &md})
			return nil
		})
	}
	_ = g.Wait()
}

func readMetadata(ctx context.Context, up Upload) (model.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return model.Metadata{}, err
	}
	if up.Open == nil {
		return model.Metadata{}, errors.New("no content source")
	}
	rc, err := up.Open()
	if err != nil {
		return model.Metadata{}, fmt.Errorf("open content: %w", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("read content: %w", err)
	}
	return ExtractMetadata(data, up.Size, up.Type), nil
}

// Remove drops one file. Unknown ids are ignored.
func (in *Ingestor) Remove(id string) {
	if _, ok := in.store.Snapshot().File(id); !ok {
		return
	}
	in.store.Dispatch(state.RemoveFile{ID: id})
	in.store.Dispatch(state.AddNotification{
		Kind:    model.NotifyInfo,
		Title:   "File Removed",
		Message: "File has been removed from the queue",
	})
}

// Clear drops every file.
func (in *Ingestor) Clear() {
	in.store.Dispatch(state.ClearFiles{})
	in.store.Dispatch(state.AddNotification{
		Kind:    model.NotifyInfo,
		Title:   "Files Cleared",
		Message: "All files have been removed",
	})
}
