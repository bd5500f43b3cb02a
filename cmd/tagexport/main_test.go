package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/tagexport"
	main "github.com/fwojciec/tagexport/cmd/tagexport"
	"github.com/fwojciec/tagexport/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<head><title>Fixture</title></head>
<body>
<h1>A</h1>
<p>B</p>
<img src="/x.png" alt="pic">
<p>   </p>
<p>He said "hi"</p>
</body>
</html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(page))
		case "/empty":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><div>nothing selected</div></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func expectedCSV(srvURL string) string {
	return tagexport.CSVHeader + "\n" +
		`h1-1,"h1","A","rgb(0, 0, 0)","rgba(0, 0, 0, 0)","32px","","Nein"` + "\n" +
		`p-1,"p","B","rgb(0, 0, 0)","rgba(0, 0, 0, 0)","16px","","Nein"` + "\n" +
		`img-1,"img","` + srvURL + `/x.png","rgb(0, 0, 0)","rgba(0, 0, 0, 0)","16px","Alt-Text: pic","Nein"` + "\n" +
		`p-2,"p","He said ""hi""","rgb(0, 0, 0)","rgba(0, 0, 0, 0)","16px","","Nein"` + "\n"
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "tagexport")
	assert.Contains(t, stdout.String(), "--tags")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "tagexport")
}

func TestMain_Run_RejectsInvalidTags(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--static", "--tags", "p,ul>li", "https://example.com"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid tag name "ul>li"`)
}

func TestMain_Run_RejectsEmptySelection(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--static", "--tags", ",", "https://example.com"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "select at least one tag")
}

func TestMain_Run_StdoutAcceptsSingleURL(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--static", "--stdout", "https://a.example.com", "https://b.example.com"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "single URL")
}

func TestMain_Run_StaticExportWritesFile(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	outDir := t.TempDir()
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--static", "--rps", "0", "--tags", "h1,p,img", "--out", outDir, srv.URL + "/page",
	}, &stdout, &stderr)

	require.NoError(t, err, stderr.String())
	files, err := filepath.Glob(filepath.Join(outDir, "*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(filepath.Base(files[0]), "127001_page_tags_"), files[0])

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, expectedCSV(srv.URL), string(content))
	assert.Equal(t, "4 elements extracted to "+files[0]+"\n", stdout.String())
}

func TestMain_Run_StaticExportToStdout(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--static", "--stdout", "--tags", "H1, p ,img", srv.URL + "/page",
	}, &stdout, &stderr)

	require.NoError(t, err, stderr.String())
	assert.Equal(t, expectedCSV(srv.URL), stdout.String())
}

func TestMain_Run_ReportsNoMatch(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--static", "--tags", "p", "--out", t.TempDir(), srv.URL + "/empty",
	}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "no matching elements found")
	assert.Empty(t, stdout.String())
}

func TestMain_Run_ContinuesAfterFailedPage(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	outDir := t.TempDir()
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--static", "--rps", "0", "--out", outDir, srv.URL + "/missing", srv.URL + "/page",
	}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, "1 of 2 exports failed", err.Error())
	assert.Contains(t, stderr.String(), "error: "+srv.URL+"/missing: ")
	assert.Contains(t, stderr.String(), "404")
	assert.Contains(t, stdout.String(), "4 elements extracted to ")

	files, err := filepath.Glob(filepath.Join(outDir, "*.csv"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestMain_Run_UsesInjectedLoader(t *testing.T) {
	t.Parallel()

	closed := false
	node := &mock.Node{
		TagNameFn:     func() string { return "p" },
		VisibleTextFn: func() (string, error) { return "rendered", nil },
		ComputedStyleFn: func(property string) (string, error) {
			return "computed-" + property, nil
		},
	}
	m := main.NewMain()
	m.Loader = &mock.Loader{
		LoadFn: func(_ context.Context, url string) (tagexport.Document, error) {
			return &mock.Document{
				ElementsFn: func() ([]tagexport.Node, error) {
					return []tagexport.Node{node}, nil
				},
			}, nil
		},
		CloseFn: func() error {
			closed = true
			return nil
		},
	}
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--stdout", "--tags", "p", "https://example.com/app"}, &stdout, &stderr)

	require.NoError(t, err, stderr.String())
	assert.Equal(t, tagexport.CSVHeader+"\n"+
		`p-1,"p","rendered","computed-color","computed-background-color","computed-font-size","","Nein"`+"\n", stdout.String())
	assert.True(t, closed)
}

func TestMain_Run_VerboseLogsExports(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--static", "--stdout", "--verbose", srv.URL + "/page",
	}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "msg=fetch")
	assert.Contains(t, stderr.String(), "msg=load")
	assert.Contains(t, stderr.String(), "msg=export")
	assert.Contains(t, stderr.String(), "count=4")
}

func TestMain_Run_DuplicateURLsKeepBothFiles(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	outDir := t.TempDir()
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"--static", "--rps", "0", "--out", outDir, srv.URL + "/page", srv.URL + "/page",
	}, &stdout, &stderr)

	require.NoError(t, err, stderr.String())
	files, err := filepath.Glob(filepath.Join(outDir, "*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.Contains(t, stdout.String(), "4 elements extracted to "+f+"\n")
	}
}
