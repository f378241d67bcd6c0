// Package updater checks GitHub Releases for a newer quietscan build and can
// replace the running binary in place.
//
// The check is best-effort and never blocks serving; the update itself
// downloads to a sibling file and renames it over the executable.
package updater

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	githubRepo   = "HendryAvila/quietscan"
	binaryName   = "quietscan"
	checkTimeout = 10 * time.Second
)

// ErrUpToDate is returned by Update when no newer release exists.
var ErrUpToDate = errors.New("updater: already at the latest version")

// ReleaseInfo holds the fields quietscan reads from a GitHub release.
type ReleaseInfo struct {
	TagName string  `json:"tag_name"`
	HTMLURL string  `json:"html_url"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Result describes the outcome of a version check.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// Checker talks to the releases endpoint.
type Checker struct {
	Endpoint string
	Client   *http.Client
	// Executable resolves the binary to replace; defaults to os.Executable.
	Executable func() (string, error)
}

// NewChecker returns a Checker for the public quietscan releases.
func NewChecker() *Checker {
	return &Checker{
		Endpoint:   "https://api.github.com/repos/" + githubRepo + "/releases/latest",
		Client:     &http.Client{Timeout: checkTimeout},
		Executable: os.Executable,
	}
}

// Check compares current against the latest release. Network and decoding
// failures are returned; callers running in the background ignore them.
func (c *Checker) Check(ctx context.Context, current string) (*Result, *ReleaseInfo, error) {
	res := &Result{CurrentVersion: normalizeVersion(current)}

	release, err := c.latest(ctx, current)
	if err != nil {
		return res, nil, err
	}
	res.LatestVersion = normalizeVersion(release.TagName)
	res.ReleaseURL = release.HTMLURL
	res.UpdateAvailable = isNewer(res.CurrentVersion, res.LatestVersion)
	return res, release, nil
}

// Update downloads the asset for this OS/arch and swaps it in.
func (c *Checker) Update(ctx context.Context, current string) (*Result, error) {
	res, release, err := c.Check(ctx, current)
	if err != nil {
		return res, fmt.Errorf("checking latest release: %w", err)
	}
	if !res.UpdateAvailable {
		return res, ErrUpToDate
	}

	assetName := buildAssetName(res.LatestVersion)
	var downloadURL string
	for _, asset := range release.Assets {
		if asset.Name == assetName {
			downloadURL = asset.BrowserDownloadURL
			break
		}
	}
	if downloadURL == "" {
		return res, fmt.Errorf("no release asset for %s/%s (looking for %s)", runtime.GOOS, runtime.GOARCH, assetName)
	}

	body, err := c.get(ctx, downloadURL, current)
	if err != nil {
		return res, fmt.Errorf("downloading release: %w", err)
	}
	defer func() { _ = body.Close() }()

	data, err := extractBinary(body, assetName)
	if err != nil {
		return res, fmt.Errorf("extracting binary: %w", err)
	}

	exe := c.Executable
	if exe == nil {
		exe = os.Executable
	}
	execPath, err := exe()
	if err != nil {
		return res, fmt.Errorf("finding current executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	if err := replaceBinary(execPath, data); err != nil {
		return res, err
	}
	return res, nil
}

func (c *Checker) latest(ctx context.Context, current string) (*ReleaseInfo, error) {
	body, err := c.get(ctx, c.Endpoint, current)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	var release ReleaseInfo
	if err := json.NewDecoder(body).Decode(&release); err != nil {
		return nil, fmt.Errorf("parsing release info: %w", err)
	}
	return &release, nil
}

func (c *Checker) get(ctx context.Context, url, current string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", binaryName+"/"+current)

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s returned %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// replaceBinary writes data next to execPath and renames it over the
// original. Windows cannot overwrite a running binary, so the old one is
// moved aside first.
func replaceBinary(execPath string, data []byte) error {
	tmpPath := execPath + ".new"
	if err := os.WriteFile(tmpPath, data, 0o755); err != nil {
		return fmt.Errorf("writing new binary: %w", err)
	}

	if runtime.GOOS == "windows" {
		oldPath := execPath + ".old"
		_ = os.Remove(oldPath)
		if err := os.Rename(execPath, oldPath); err != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("backing up current binary: %w", err)
		}
	}

	if err := os.Rename(tmpPath, execPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing binary: %w", err)
	}
	return nil
}

func extractBinary(r io.Reader, assetName string) ([]byte, error) {
	if strings.HasSuffix(assetName, ".zip") {
		return nil, errors.New("automatic zip extraction is not supported; download the release manually")
	}
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar: %w", err)
		}
		name := filepath.Base(header.Name)
		if name == binaryName || name == binaryName+".exe" {
			return io.ReadAll(tr)
		}
	}
	return nil, fmt.Errorf("%s binary not found in archive", binaryName)
}

// buildAssetName matches the GoReleaser name_template.
func buildAssetName(version string) string {
	ext := "tar.gz"
	if runtime.GOOS == "windows" {
		ext = "zip"
	}
	return fmt.Sprintf("%s_%s_%s_%s.%s", binaryName, version, runtime.GOOS, runtime.GOARCH, ext)
}

func normalizeVersion(v string) string {
	return strings.TrimPrefix(v, "v")
}

// isNewer reports whether latest is a higher semantic version than current.
// Development builds never update.
func isNewer(current, latest string) bool {
	if current == "" || latest == "" || current == "dev" {
		return false
	}
	cv, lv := "v"+current, "v"+latest
	if !semver.IsValid(cv) || !semver.IsValid(lv) {
		return false
	}
	return semver.Compare(lv, cv) > 0
}
