package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fsti-hub/internal/config"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrFileTypeRejected = errors.New("file type not allowed")
	ErrInvalidKey       = errors.New("invalid object key")
)

const (
	FolderProfiles = "profiles"
	FolderCVs      = "cvs"
	FolderJobTDRs  = "job-tdrs"
	FolderNews     = "news"
)

var (
	imageExts    = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}
	documentExts = []string{".pdf", ".doc", ".docx"}
)

// allowedExtensions keys on the top-level folder of an object key.
var allowedExtensions = map[string][]string{
	FolderProfiles: imageExts,
	FolderNews:     imageExts,
	FolderCVs:      documentExts,
	FolderJobTDRs:  documentExts,
}

type Object struct {
	Key string
	URL string
}

// Local stores objects under a directory and serves them from PublicBaseURL.
type Local struct {
	dir     string
	baseURL string
	maxSize int64
}

func NewLocal(cfg config.StorageConfig) (*Local, error) {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		return nil, errors.New("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{
		dir:     dir,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxSize: cfg.MaxFileBytes,
	}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

// Put writes r under folder with a random name that keeps the original extension.
// folder may have sub-paths ("job-tdrs/<recruiter>"); its first segment selects
// the allowed extensions.
func (l *Local) Put(ctx context.Context, folder, filename string, r io.Reader) (Object, error) {
	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" || folder == "." {
		return Object{}, ErrInvalidKey
	}
	ext := strings.ToLower(path.Ext(filename))
	if !extensionAllowed(folder, ext) {
		return Object{}, ErrFileTypeRejected
	}

	key := folder + "/" + uuid.NewString() + ext
	full := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Object{}, err
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return Object{}, err
	}

	src := r
	if l.maxSize > 0 {
		src = io.LimitReader(r, l.maxSize+1)
	}
	n, err := io.Copy(f, contextReader{ctx: ctx, r: src})
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && l.maxSize > 0 && n > l.maxSize {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		return Object{}, err
	}

	return Object{Key: key, URL: l.PublicURL(key)}, nil
}

func (l *Local) PublicURL(key string) string {
	return l.baseURL + "/" + strings.TrimLeft(key, "/")
}

// Delete removes the object behind key or behind one of this store's public URLs.
// Missing objects are not an error.
func (l *Local) Delete(_ context.Context, keyOrURL string) error {
	key := strings.TrimPrefix(keyOrURL, l.baseURL+"/")
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func extensionAllowed(folder, ext string) bool {
	root := folder
	if i := strings.IndexByte(folder, '/'); i >= 0 {
		root = folder[:i]
	}
	for _, e := range allowedExtensions[root] {
		if e == ext {
			return true
		}
	}
	return false
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
