package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	perr "itinerary/internal/platform/errors"
)

const (
	blobExt = ".bin"
	metaExt = ".json"
)

// FS keeps artifacts as <id>.bin with a <id>.json metadata sidecar in one directory.
// Writes go through a temp file and a rename so readers never see partial data
type FS struct {
	dir string
	now func() time.Time
}

// NewFS creates dir if needed
func NewFS(dir string, now func() time.Time) (*FS, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, perr.InvalidArgf("artifact dir is empty")
	}
	if now == nil {
		now = time.Now
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "create artifact dir %s", dir)
	}
	return &FS{dir: dir, now: now}, nil
}

// Dir returns the backing directory
func (f *FS) Dir() string { return f.dir }

// Ping checks the directory accepts writes
func (f *FS) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "artifact ping")
	}
	tmp, err := os.CreateTemp(f.dir, ".ping-*")
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "artifact dir not writable")
	}
	name := tmp.Name()
	_ = tmp.Close()
	return perr.WrapIf(os.Remove(name), perr.ErrorCodeUnavailable, "artifact ping cleanup")
}

// Put implements Blobs
func (f *FS) Put(ctx context.Context, in PutInput, r io.Reader) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "artifact put")
	}
	a := Artifact{
		ID:          uuid.NewString(),
		Name:        filepath.Base(strings.TrimSpace(in.Name)),
		ContentType: in.ContentType,
		CreatedAt:   f.now().UTC(),
		RequestID:   in.RequestID,
	}
	if a.Name == "." || a.Name == string(filepath.Separator) {
		a.Name = a.ID
	}
	if a.ContentType == "" {
		a.ContentType = "application/octet-stream"
	}

	n, err := f.writeAtomic(a.ID+blobExt, func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
	if err != nil {
		return Artifact{}, err
	}
	a.Size = n

	meta, err := json.Marshal(a)
	if err != nil {
		return Artifact{}, perr.Wrap(err, perr.ErrorCodeStorage, "encode artifact meta")
	}
	if _, err := f.writeAtomic(a.ID+metaExt, func(w io.Writer) error {
		_, err := w.Write(meta)
		return err
	}); err != nil {
		_ = os.Remove(f.path(a.ID + blobExt))
		return Artifact{}, err
	}
	return a, nil
}

// Get implements Blobs; unknown or malformed ids are NotFound
func (f *FS) Get(ctx context.Context, id string) (Artifact, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "artifact get")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Artifact{}, nil, perr.NotFoundf("artifact %q not found", id)
	}
	a, err := f.meta(id)
	if err != nil {
		return Artifact{}, nil, err
	}
	rc, err := os.Open(f.path(id + blobExt))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Artifact{}, nil, perr.NotFoundf("artifact %q not found", id)
		}
		return Artifact{}, nil, perr.Wrap(err, perr.ErrorCodeStorage, "open artifact")
	}
	return a, rc, nil
}

// Sweep implements Blobs
func (f *FS) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeStorage, "list artifacts")
	}
	var removed int
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return removed, perr.Wrap(err, perr.ErrorCodeUnavailable, "artifact sweep")
		}
		id, ok := strings.CutSuffix(e.Name(), metaExt)
		if !ok || e.IsDir() {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		a, err := f.meta(id)
		if err != nil || !a.CreatedAt.Before(cutoff) {
			continue
		}
		_ = os.Remove(f.path(id + blobExt))
		_ = os.Remove(f.path(id + metaExt))
		removed++
	}
	return removed, nil
}

func (f *FS) meta(id string) (Artifact, error) {
	b, err := os.ReadFile(f.path(id + metaExt))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Artifact{}, perr.NotFoundf("artifact %q not found", id)
		}
		return Artifact{}, perr.Wrap(err, perr.ErrorCodeStorage, "read artifact meta")
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return Artifact{}, perr.Wrap(err, perr.ErrorCodeStorage, "decode artifact meta")
	}
	return a, nil
}

func (f *FS) writeAtomic(name string, fill func(io.Writer) error) (int64, error) {
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeStorage, "create artifact")
	}
	tmpName := tmp.Name()
	cw := &countingWriter{w: tmp}
	if err := fill(cw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return 0, perr.Wrap(err, perr.ErrorCodeStorage, "write artifact")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return 0, perr.Wrap(err, perr.ErrorCodeStorage, "close artifact")
	}
	if err := os.Rename(tmpName, f.path(name)); err != nil {
		_ = os.Remove(tmpName)
		return 0, perr.Wrap(err, perr.ErrorCodeStorage, "publish artifact")
	}
	return cw.n, nil
}

func (f *FS) path(name string) string { return filepath.Join(f.dir, name) }

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
