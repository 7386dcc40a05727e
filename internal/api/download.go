package api

import (
	"context"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"palchi-cli/internal/model"
)

// ExportEventsCSV downloads the CSV export, optionally filtered by status,
// and writes it to dest. When dest is empty or a directory, the server's
// suggested filename (or "eventi.csv") is used. Returns the written path.
//
// This is the CLI's stand-in for the browser's temporary-anchor download: a
// raw byte stream, not a JSON call, but with the same auth and error mapping.
func (c *Client) ExportEventsCSV(ctx context.Context, status *model.EventStatus, dest string) (string, error) {
	if c.busy != nil {
		c.busy(1)
		defer c.busy(-1)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.base + "/events/export/csv"
	if q := statusQuery(status); q != nil {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", c.mapTransportError(http.MethodGet, "/events/export/csv", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.mapStatusError(http.MethodGet, "/events/export/csv", resp)
	}

	path := resolveDownloadPath(dest, resp.Header.Get("Content-Disposition"))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func resolveDownloadPath(dest, contentDisposition string) string {
	name := "eventi.csv"
	if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
		if fn := params["filename"]; fn != "" {
			// Never trust path separators in a server-supplied name.
			name = filepath.Base(fn)
		}
	}
	if dest == "" {
		return name
	}
	if st, err := os.Stat(dest); err == nil && st.IsDir() {
		return filepath.Join(dest, name)
	}
	return dest
}
