package api

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palchi-cli/internal/model"
)

func TestExportEventsCSVWritesServerNamedFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events/export/csv", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Completed", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="export_eventi.csv"`)
		w.Write([]byte("id,title\n1,Sagra\n"))
	})
	c, _ := newTestClient(t, mux)

	dir := t.TempDir()
	st := model.StatusCompleted
	path, err := c.ExportEventsCSV(t.Context(), &st, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export_eventi.csv"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,title\n1,Sagra\n", string(b))
}

func TestExportEventsCSVErrorLeavesNoFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events/export/csv", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, _ := newTestClient(t, mux)

	dir := t.TempDir()
	_, err := c.ExportEventsCSV(t.Context(), nil, filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.True(t, IsAuthExpired(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResolveDownloadPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		dest        string
		disposition string
		want        string
	}{
		{
			name: "default name",
			want: "eventi.csv",
		},
		{
			name:        "server filename",
			disposition: `attachment; filename="eventi_2026.csv"`,
			want:        "eventi_2026.csv",
		},
		{
			name:        "server path traversal stripped",
			disposition: `attachment; filename="../../etc/passwd"`,
			want:        "passwd",
		},
		{
			name: "explicit file dest wins",
			dest: filepath.Join(dir, "mio.csv"),
			want: filepath.Join(dir, "mio.csv"),
		},
		{
			name:        "directory dest joins name",
			dest:        dir,
			disposition: `attachment; filename="x.csv"`,
			want:        filepath.Join(dir, "x.csv"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveDownloadPath(tt.dest, tt.disposition))
		})
	}
}
