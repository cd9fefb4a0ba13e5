package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// releaseArch maps GOARCH values to the names stamped on published
// release archives.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// releaseFiles resolves the archive asset and the binary name inside it
// for a platform. Darwin ships a universal binary.
func releaseFiles(goos, goarch string) (archive, binary string, err error) {
	switch goos {
	case "darwin":
		return "ghinho_Darwin_all.tar.gz", "ghinho", nil
	case "linux", "windows":
	default:
		return "", "", fmt.Errorf("no release build for %s", goos)
	}

	arch, ok := releaseArch[goarch]
	if !ok {
		return "", "", fmt.Errorf("no release build for %s/%s", goos, goarch)
	}
	if goos == "windows" {
		return "ghinho_Windows_" + arch + ".zip", "ghinho.exe", nil
	}
	return "ghinho_Linux_" + arch + ".tar.gz", "ghinho", nil
}

// Update downloads the latest release for the running platform, verifies
// it against the published checksum manifest and swaps the executable in
// place. report receives one human-readable line per stage. On success
// the installed tag is returned.
func (c *Checker) Update(ctx context.Context, currentVersion string, report func(string)) (string, error) {
	if currentVersion == "(devel)" {
		return "", ErrDevBuild
	}

	report("Checking for a newer release...")
	res, err := c.Check(ctx, &CheckInput{Version: currentVersion})
	if err != nil {
		return "", fmt.Errorf("check release: %w", err)
	}
	if !res.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	tag := res.LatestVersion

	archive, binary, err := releaseFiles(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return "", err
	}

	report("Fetching checksums for " + tag + "...")
	manifest, err := c.fetch(ctx, c.assetURL(tag, "checksums.txt"))
	if err != nil {
		return "", fmt.Errorf("fetch checksum manifest: %w", err)
	}
	want, err := manifestDigest(manifest, archive)
	if err != nil {
		return "", err
	}

	report("Downloading " + archive + "...")
	data, err := c.fetch(ctx, c.assetURL(tag, archive))
	if err != nil {
		return "", fmt.Errorf("fetch archive: %w", err)
	}
	if got := hexDigest(data); got != want {
		return "", fmt.Errorf("%w for %s: want %s, got %s", ErrChecksum, archive, want, got)
	}

	report("Unpacking...")
	bin, err := binaryFromArchive(data, archive, binary)
	if err != nil {
		return "", err
	}

	report("Installing...")
	target, err := c.execPath()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if err := replaceExecutable(target, bin); err != nil {
		return "", err
	}
	return tag, nil
}

func (c *Checker) assetURL(tag, name string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, name)
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// manifestDigest finds the sha256 for one asset in a checksums.txt
// manifest ("<hex>  <filename>" per line).
func manifestDigest(manifest []byte, asset string) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(manifest))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == asset {
			return fields[0], nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%s not listed in checksums.txt", asset)
}

func hexDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// binaryFromArchive pulls the named binary out of a release archive,
// tar.gz or zip depending on the asset suffix.
func binaryFromArchive(data []byte, archiveName, binaryName string) ([]byte, error) {
	if strings.HasSuffix(archiveName, ".zip") {
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("open zip: %w", err)
		}
		for _, f := range zr.File {
			if filepath.Base(f.Name) != binaryName {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer func() { _ = rc.Close() }()
			return io.ReadAll(rc)
		}
		return nil, fmt.Errorf("%s not found in %s", binaryName, archiveName)
	}

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not found in %s", binaryName, archiveName)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == binaryName {
			return io.ReadAll(tr)
		}
	}
}

// replaceExecutable stages the new binary next to the current one and
// renames it over, keeping the original file mode. The sibling temp file
// keeps the rename on one filesystem.
func replaceExecutable(target string, data []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	f, err := os.CreateTemp(filepath.Dir(target), ".ghinho-*")
	if err != nil {
		return fmt.Errorf("stage new binary: %w", err)
	}
	staged := f.Name()

	_, werr := f.Write(data)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(staged, info.Mode())
	}
	if werr == nil {
		werr = os.Rename(staged, target)
	}
	if werr != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("install new binary: %w", werr)
	}
	return nil
}
