package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tarGzWith(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Mode:     0755,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func zipWith(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// releaseServer serves the latest-release endpoint plus the archive and
// checksum manifest for one tag.
func releaseServer(t *testing.T, tag string, archiveData []byte, manifest string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/vuminh/ghinho/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://github.com/vuminh/ghinho/releases/tag/%s"}`, tag, tag)
	})
	mux.HandleFunc("/vuminh/ghinho/releases/download/"+tag+"/checksums.txt", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, manifest)
	})
	mux.HandleFunc("/vuminh/ghinho/releases/download/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(archiveData)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// installedBinary writes a stand-in for the running executable.
func installedBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ghinho")
	require.NoError(t, os.WriteFile(path, []byte("old build"), 0755))
	return path
}

// platformArchive packs the given binary the way the release pipeline
// would for the platform running the test.
func platformArchive(t *testing.T, binary []byte) (data []byte, name string) {
	t.Helper()
	archiveName, binaryName, err := releaseFiles(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)
	if strings.HasSuffix(archiveName, ".zip") {
		return zipWith(t, binaryName, binary), archiveName
	}
	return tarGzWith(t, binaryName, binary), archiveName
}

func TestUpdateReplacesExecutable(t *testing.T) {
	newBinary := []byte("new build v1.3.0")
	archive, archiveName := platformArchive(t, newBinary)
	manifest := fmt.Sprintf("%s  %s\n", hexDigest(archive), archiveName)

	srv := releaseServer(t, "v1.3.0", archive, manifest)
	target := installedBinary(t)
	c := NewChecker(
		WithBaseURL(srv.URL),
		WithDownloadBaseURL(srv.URL),
		withExecPath(func() (string, error) { return target, nil }),
	)

	var lines []string
	tag, err := c.Update(context.Background(), "v1.2.0", func(line string) { lines = append(lines, line) })
	require.NoError(t, err)
	assert.Equal(t, "v1.3.0", tag)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, newBinary, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	}
	assert.NotEmpty(t, lines)
}

func TestUpdateRejectsChecksumMismatch(t *testing.T) {
	archive, archiveName := platformArchive(t, []byte("new build"))
	manifest := fmt.Sprintf("%s  %s\n", hexDigest([]byte("something else")), archiveName)

	srv := releaseServer(t, "v1.3.0", archive, manifest)
	target := installedBinary(t)
	c := NewChecker(
		WithBaseURL(srv.URL),
		WithDownloadBaseURL(srv.URL),
		withExecPath(func() (string, error) { return target, nil }),
	)

	_, err := c.Update(context.Background(), "v1.2.0", func(string) {})
	require.ErrorIs(t, err, ErrChecksum)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("old build"), got, "a failed update must not touch the binary")
}

func TestUpdateRefusesDevBuild(t *testing.T) {
	c := NewChecker()
	_, err := c.Update(context.Background(), "(devel)", func(string) {})
	require.ErrorIs(t, err, ErrDevBuild)
}

func TestUpdateAlreadyLatest(t *testing.T) {
	srv := releaseServer(t, "v1.2.0", nil, "")
	c := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))

	_, err := c.Update(context.Background(), "v1.2.0", func(string) {})
	require.ErrorIs(t, err, ErrAlreadyLatest)
}

func TestReleaseFiles(t *testing.T) {
	tests := []struct {
		goos, goarch string
		wantArchive  string
		wantBinary   string
		wantErr      bool
	}{
		{"darwin", "arm64", "ghinho_Darwin_all.tar.gz", "ghinho", false},
		{"darwin", "amd64", "ghinho_Darwin_all.tar.gz", "ghinho", false},
		{"linux", "amd64", "ghinho_Linux_x86_64.tar.gz", "ghinho", false},
		{"linux", "arm64", "ghinho_Linux_arm64.tar.gz", "ghinho", false},
		{"linux", "386", "ghinho_Linux_i386.tar.gz", "ghinho", false},
		{"windows", "amd64", "ghinho_Windows_x86_64.zip", "ghinho.exe", false},
		{"linux", "mips", "", "", true},
		{"freebsd", "amd64", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			archive, binary, err := releaseFiles(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantArchive, archive)
			assert.Equal(t, tt.wantBinary, binary)
		})
	}
}

func TestManifestDigest(t *testing.T) {
	manifest := []byte(
		"aaa111  ghinho_Linux_x86_64.tar.gz\n" +
			"not a manifest line\n" +
			"bbb222  ghinho_Darwin_all.tar.gz\n")

	got, err := manifestDigest(manifest, "ghinho_Darwin_all.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, "bbb222", got)

	_, err = manifestDigest(manifest, "ghinho_Windows_x86_64.zip")
	require.Error(t, err)
}

func TestBinaryFromArchive(t *testing.T) {
	content := []byte("the binary")

	t.Run("tar.gz with nested path", func(t *testing.T) {
		data := tarGzWith(t, "ghinho_1.3.0/bin/ghinho", content)
		got, err := binaryFromArchive(data, "ghinho_Linux_x86_64.tar.gz", "ghinho")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("zip", func(t *testing.T) {
		data := zipWith(t, "ghinho.exe", content)
		got, err := binaryFromArchive(data, "ghinho_Windows_x86_64.zip", "ghinho.exe")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("binary missing", func(t *testing.T) {
		data := tarGzWith(t, "README.md", []byte("docs"))
		_, err := binaryFromArchive(data, "ghinho_Linux_x86_64.tar.gz", "ghinho")
		require.Error(t, err)
	})
}

func TestReplaceExecutablePreservesMode(t *testing.T) {
	target := installedBinary(t)
	require.NoError(t, replaceExecutable(target, []byte("replacement")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("replacement"), got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}
