package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/AnyUserName/imgconv-cli/internal/hasher"
)

// ManifestName is the runtime manifest published next to the binary.
const ManifestName = "runtime.yaml"

// Manifest describes a downloadable ffmpeg runtime.
type Manifest struct {
	Version string `yaml:"version"`
	Binary  string `yaml:"binary"`
	XXH64   string `yaml:"xxh64"`
	Size    int64  `yaml:"size"`
}

// Runtime is a located and validated ffmpeg binary.
type Runtime struct {
	Path    string
	Version string
	// Source says where the binary came from: "config", "path", "cache" or
	// "download".
	Source string

	workDir     string
	ownsWorkDir bool
}

// loader finds or fetches the ffmpeg binary.
type loader struct {
	binaryPath string
	searchPath bool
	baseURL    string
	version    string
	cacheDir   string
	client     *http.Client
	log        zerolog.Logger
}

var errNoRuntime = errors.New("ffmpeg binary not found: set ffmpeg.path, install ffmpeg, or set ffmpeg.base_url")

// locate returns the binary path and its source.
func (l *loader) locate(ctx context.Context) (string, string, error) {
	if l.binaryPath != "" {
		if err := checkBinary(l.binaryPath); err != nil {
			return "", "", err
		}
		return l.binaryPath, "config", nil
	}
	if l.searchPath {
		if p, err := exec.LookPath("ffmpeg"); err == nil {
			return p, "path", nil
		}
	}
	if l.baseURL == "" || l.cacheDir == "" {
		return "", "", errNoRuntime
	}

	dir := filepath.Join(l.cacheDir, l.version)
	if p, err := l.cached(dir); err == nil {
		return p, "cache", nil
	} else if !errors.Is(err, os.ErrNotExist) {
		l.log.Warn().Err(err).Str("dir", dir).Msg("discarding cached runtime")
	}

	p, err := l.fetch(ctx, dir)
	if err != nil {
		return "", "", err
	}
	return p, "download", nil
}

// checkBinary requires a non-empty regular file.
func checkBinary(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("ffmpeg binary not found: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("ffmpeg binary not found: %s is not a regular file", path)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("runtime binary %s is empty", path)
	}
	return nil
}

func readManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseManifest(data)
}

func parseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse runtime manifest: %w", err)
	}
	if m.Binary == "" || m.XXH64 == "" {
		return nil, fmt.Errorf("parse runtime manifest: binary and xxh64 are required")
	}
	if filepath.Base(m.Binary) != m.Binary {
		return nil, fmt.Errorf("parse runtime manifest: binary %q must be a plain file name", m.Binary)
	}
	return &m, nil
}

// cached returns a previously downloaded binary after re-verifying it.
func (l *loader) cached(dir string) (string, error) {
	m, err := readManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, m.Binary)
	if err := verifyFile(path, m); err != nil {
		return "", err
	}
	return path, nil
}

func verifyFile(path string, m *Manifest) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sum, n, err := hasher.SumReader(f)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("runtime binary %s is empty", path)
	}
	if m.Size > 0 && n != m.Size {
		return fmt.Errorf("runtime checksum mismatch for %s: size %d, want %d", m.Binary, n, m.Size)
	}
	if err := hasher.Verify(sum, m.XXH64); err != nil {
		return fmt.Errorf("runtime %w for %s", err, m.Binary)
	}
	return nil
}

// fetch downloads the manifest and the binary into dir. Partial results are
// removed on failure.
func (l *loader) fetch(ctx context.Context, dir string) (string, error) {
	base := strings.TrimRight(l.baseURL, "/") + "/" + l.version + "/"

	manifestData, err := l.get(ctx, base+ManifestName)
	if err != nil {
		return "", err
	}
	m, err := parseManifest(manifestData)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create runtime cache: %w", err)
	}
	binPath := filepath.Join(dir, m.Binary)
	if err := l.download(ctx, base+m.Binary, binPath, m); err != nil {
		return "", err
	}
	if err := writeFileAtomic(filepath.Join(dir, ManifestName), manifestData, 0o644); err != nil {
		os.Remove(binPath)
		return "", fmt.Errorf("store runtime manifest: %w", err)
	}

	l.log.Info().Str("version", m.Version).Str("path", binPath).Msg("ffmpeg runtime downloaded")
	return binPath, nil
}

func (l *loader) open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch runtime asset %s: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch runtime asset %s: network error: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch runtime asset %s failed: %s", url, resp.Status)
	}
	return resp.Body, nil
}

func (l *loader) get(ctx context.Context, url string) ([]byte, error) {
	body, err := l.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("fetch runtime asset %s: network error: %w", url, err)
	}
	return data, nil
}

// download streams url into dst through a temp file, verifying the digest
// before the rename.
func (l *loader) download(ctx context.Context, url, dst string, m *Manifest) error {
	body, err := l.open(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".download-*")
	if err != nil {
		return fmt.Errorf("create runtime temp: %w", err)
	}
	tmpPath := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w, digest := hasher.Tee(tmp)
	n, err := io.Copy(w, body)
	if err != nil {
		return fmt.Errorf("fetch runtime asset %s: network error: %w", url, err)
	}
	if n == 0 {
		return fmt.Errorf("runtime binary %s is empty", m.Binary)
	}
	if m.Size > 0 && n != m.Size {
		return fmt.Errorf("runtime checksum mismatch for %s: size %d, want %d", m.Binary, n, m.Size)
	}
	if err := hasher.Verify(digest.Sum(), m.XXH64); err != nil {
		return fmt.Errorf("runtime %w for %s", err, m.Binary)
	}
	if err := tmp.Chmod(0o755); err != nil {
		return fmt.Errorf("chmod runtime: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close runtime: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("install runtime: %w", err)
	}
	ok = true
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
