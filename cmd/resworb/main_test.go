package main_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/resworb"
	main "github.com/fwojciec/resworb/cmd/resworb"
	"github.com/fwojciec/resworb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chromeBookmarks = `{
	"checksum": "abc",
	"roots": {
		"bookmark_bar": {
			"name": "Bookmarks bar",
			"type": "folder",
			"children": [
				{"name": "Article", "type": "url", "url": "https://mp.weixin.qq.com/s/abc"},
				{"name": "Go", "type": "folder", "children": [
					{"name": "Go", "type": "url", "url": "https://go.dev"}
				]}
			]
		},
		"other": {"name": "Other bookmarks", "type": "folder", "children": []}
	},
	"version": 1
}`

// chromeLibrary creates a Chrome profile directory with bookmarks and one
// history visit.
func chromeLibrary(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bookmarks"), []byte(chromeBookmarks), 0644))

	conn, err := sql.Open("sqlite3", filepath.Join(dir, "History"))
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Exec(`CREATE TABLE urls (id INTEGER PRIMARY KEY, url LONGVARCHAR, title LONGVARCHAR, last_visit_time INTEGER NOT NULL)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO urls (url, title, last_visit_time) VALUES (?, ?, ?)`,
		"https://go.dev/doc", "Docs", int64(13350000000000000))
	require.NoError(t, err)

	return dir
}

func newTestMain(t *testing.T) *main.Main {
	t.Helper()

	m := main.NewMain()
	m.EnvFile = filepath.Join(t.TempDir(), ".env")
	m.Home = t.TempDir()
	m.GOOS = "linux"
	return m
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := newTestMain(t).Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "export")
	assert.Contains(t, helpOutput, "browsers")
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	err := newTestMain(t).Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_Export(t *testing.T) {
	t.Parallel()

	t.Run("exports chrome bookmarks and histories", func(t *testing.T) {
		t.Parallel()

		library := chromeLibrary(t)
		target := filepath.Join(t.TempDir(), "nested", "out.json")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(t).Run(context.Background(), []string{
			"export", "-b", "chrome", "-l", library, "-t", target,
			"-s", "bookmarks", "-s", "histories", "--no-format",
		}, stdout, stderr)
		require.NoError(t, err, stderr.String())

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		var got struct {
			Bookmarks []resworb.URLItem `json:"bookmarks"`
			Histories []resworb.URLItem `json:"histories"`
		}
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, []resworb.URLItem{
			{URL: "https://mp.weixin.qq.com/s/abc", Title: "Article", Folders: []string{"Bookmarks bar"}},
			{URL: "https://go.dev", Title: "Go", Folders: []string{"Bookmarks bar", "Go"}},
		}, got.Bookmarks)
		require.Len(t, got.Histories, 1)
		assert.Equal(t, "https://go.dev/doc", got.Histories[0].URL)
		assert.Nil(t, got.Histories[0].ID)
		assert.NotEmpty(t, got.Histories[0].VisitTime)
		assert.Contains(t, stderr.String(), "export statistics")
	})

	t.Run("rewrites article titles with the fetcher", func(t *testing.T) {
		t.Parallel()

		library := chromeLibrary(t)
		target := filepath.Join(t.TempDir(), "out.xml")
		m := newTestMain(t)
		closed := false
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return `<h1 class="rich_media_title">Real Title</h1>`, nil
			},
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		err := m.Run(context.Background(), []string{
			"export", "-b", "chrome", "-l", library, "-t", target, "-s", "bookmarks",
		}, &bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<title>Real Title</title>")
		assert.True(t, closed)
	})

	t.Run("rewrites titles when root flags precede the command", func(t *testing.T) {
		t.Parallel()

		library := chromeLibrary(t)
		target := filepath.Join(t.TempDir(), "out.json")
		m := newTestMain(t)
		var fetched []string
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched = append(fetched, url)
				return `<h1 class="rich_media_title">Real Title</h1>`, nil
			},
			CloseFn: func() error { return nil },
		}

		err := m.Run(context.Background(), []string{
			"-v", "--log-file", filepath.Join(t.TempDir(), "resworb.log"),
			"export", "-b", "chrome", "-l", library, "-t", target, "-s", "bookmarks",
		}, &bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Equal(t, []string{"https://mp.weixin.qq.com/s/abc"}, fetched)
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		var got struct {
			Bookmarks []resworb.URLItem `json:"bookmarks"`
		}
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got.Bookmarks, 2)
		assert.Equal(t, "Real Title", got.Bookmarks[0].Title)
	})

	t.Run("fails when the library has no browser data", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), []string{
			"export", "-b", "chrome", "-l", t.TempDir(), "-t", filepath.Join(t.TempDir(), "out.json"), "--no-format",
		}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, resworb.ENOTFOUND, resworb.ErrorCode(err))
	})

	t.Run("rejects unknown browser", func(t *testing.T) {
		t.Parallel()

		err := newTestMain(t).Run(context.Background(), []string{
			"export", "-b", "netscape", "-l", t.TempDir(), "-t", "out.json", "--no-format",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, resworb.EINVALID, resworb.ErrorCode(err))
	})

	t.Run("writes logs to file", func(t *testing.T) {
		t.Parallel()

		library := chromeLibrary(t)
		logFile := filepath.Join(t.TempDir(), "resworb.log")

		err := newTestMain(t).Run(context.Background(), []string{
			"--log-file", logFile,
			"export", "-b", "chrome", "-l", library, "-t", filepath.Join(t.TempDir(), "out.gob"), "-s", "histories", "--no-format",
		}, &bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "extract")
		assert.Contains(t, string(data), "histories")
	})
}

// Not parallel: the .env file sets a process environment variable.
func TestMain_Run_LoadsEnvFile(t *testing.T) {
	_, set := os.LookupEnv("RESWORB_LIBRARY")
	if set {
		t.Skip("RESWORB_LIBRARY is set in the environment")
	}
	t.Cleanup(func() { os.Unsetenv("RESWORB_LIBRARY") })

	library := chromeLibrary(t)
	m := newTestMain(t)
	require.NoError(t, os.WriteFile(m.EnvFile, []byte("RESWORB_LIBRARY="+library+"\n"), 0644))
	target := filepath.Join(t.TempDir(), "out.toml")

	err := m.Run(context.Background(), []string{
		"export", "-b", "chrome", "-t", target, "-s", "bookmarks", "--no-format",
	}, &bytes.Buffer{}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.FileExists(t, target)
}

func TestMain_Run_MalformedEnvFile(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	require.NoError(t, os.WriteFile(m.EnvFile, []byte("BAD-KEY=value\n"), 0644))

	err := m.Run(context.Background(), []string{"browsers"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
}

func TestMain_Run_Browsers(t *testing.T) {
	t.Parallel()

	t.Run("lists browsers found in the home directory", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		chrome := filepath.Join(m.Home, ".config", "google-chrome", "Default")
		require.NoError(t, os.MkdirAll(chrome, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(chrome, "Bookmarks"), []byte(chromeBookmarks), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(chrome, "History"), nil, 0644))
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"browsers"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		out := stdout.String()
		assert.Regexp(t, `chrome\s+found\s+`, out)
		assert.Contains(t, out, "sources: bookmarks, histories")
		assert.Regexp(t, `firefox\s+not found`, out)
		assert.Regexp(t, `safari\s+unsupported`, out)
	})
}
