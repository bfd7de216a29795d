package models

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"pranaam/config"
)

// Store resolves language models to local paths, downloading the bundle on
// first use and serving every later request from the on-disk cache.
type Store struct {
	baseURL  string
	cacheDir string
	timeout  time.Duration
	client   *retryablehttp.Client
	log      *zap.SugaredLogger

	// mu serializes downloads so concurrent resolutions trigger one fetch.
	mu sync.Mutex
}

type Option func(*Store)

func WithBaseURL(url string) Option {
	return func(s *Store) { s.baseURL = url }
}

func WithCacheDir(dir string) Option {
	return func(s *Store) { s.cacheDir = dir }
}

func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) { s.client.HTTPClient = client }
}

func WithRetries(n int) Option {
	return func(s *Store) { s.client.RetryMax = n }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.log = logger.Sugar() }
}

// NewStore builds a Store. Without options it uses the public model URL
// (respecting the PRANAAM_MODEL_URL environment variable) and the platform
// user cache directory.
func NewStore(opts ...Option) (*Store, error) {
	cfg := config.Default()
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	s := &Store{
		baseURL: cfg.ModelURL,
		timeout: time.Duration(cfg.DownloadTimeoutSeconds) * time.Second,
		client:  client,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cacheDir == "" {
		dir, err := cfg.ResolveCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving cache dir: %w", err)
		}
		s.cacheDir = dir
	}
	return s, nil
}

// CacheDir returns the directory the store installs bundles into.
func (s *Store) CacheDir() string {
	return s.cacheDir
}

// Resolve returns a local handle for the requested language model. A cached
// bundle is returned without network access unless latest is set. A corrupt
// cached bundle is re-downloaded once before the failure is surfaced.
func (s *Store) Resolve(ctx context.Context, lang string, latest bool) (LocalModel, error) {
	sub, ok := langSubdir[lang]
	if !ok {
		return LocalModel{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bundleDir := filepath.Join(s.cacheDir, BundleName)
	modelDir := filepath.Join(bundleDir, sub)
	cached := usableModelDir(modelDir)

	if cached && !latest {
		s.log.Debugw("model cache hit", "lang", lang, "dir", modelDir)
		return LocalModel{Lang: lang, Version: BundleVersion, Dir: modelDir}, nil
	}

	bundlePresent := dirExists(bundleDir)
	if bundlePresent && !cached {
		s.log.Warnw("cached model bundle is unusable, re-downloading", "dir", modelDir)
	}

	if err := s.install(ctx); err != nil {
		if cached {
			// latest check failed but a usable copy exists; keep serving it
			s.log.Warnw("model download failed, using cached copy", "lang", lang, "error", err)
			return LocalModel{Lang: lang, Version: BundleVersion, Dir: modelDir}, nil
		}
		if bundlePresent {
			return LocalModel{}, fmt.Errorf("%w: re-download failed: %v", ErrCacheCorrupt, err)
		}
		return LocalModel{}, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	if !usableModelDir(modelDir) {
		return LocalModel{}, fmt.Errorf("%w: bundle has no usable %s", ErrCacheCorrupt, filepath.Join(sub, ModelFile))
	}
	return LocalModel{Lang: lang, Version: BundleVersion, Dir: modelDir}, nil
}

// install downloads the bundle archive, extracts it next to the cache path
// and swaps it into place with renames, so readers never observe a partially
// written bundle.
func (s *Store) install(ctx context.Context) error {
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	archive, err := s.download(ctx)
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	extractDir, err := os.MkdirTemp(s.cacheDir, ".extract-")
	if err != nil {
		return fmt.Errorf("creating extract dir: %w", err)
	}
	defer os.RemoveAll(extractDir)

	if err := extractTarGz(archive, extractDir); err != nil {
		return fmt.Errorf("extracting bundle: %w", err)
	}

	src := filepath.Join(extractDir, BundleName)
	if !dirExists(src) {
		return fmt.Errorf("archive does not contain %s", BundleName)
	}

	dst := filepath.Join(s.cacheDir, BundleName)
	old := dst + ".old"
	os.RemoveAll(old)
	if err := os.Rename(dst, old); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("moving old bundle aside: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		os.Rename(old, dst)
		return fmt.Errorf("installing bundle: %w", err)
	}
	os.RemoveAll(old)

	s.log.Infow("model bundle installed", "dir", dst)
	return nil
}

// usableModelDir reports whether a language directory holds a loadable
// artifact file.
func usableModelDir(dir string) bool {
	path := filepath.Join(dir, ModelFile)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return false
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Valid(payload)
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
