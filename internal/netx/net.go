// Package netx contains plain HTTP transfer helpers.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxDownloadSize bounds the body accepted by Download.
const MaxDownloadSize = 10 << 20

// Download fetches url with a GET request and returns the body together with
// its Content-Type. Any non-200 status is an error that includes the status
// line and a short excerpt of the body.
func Download(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(body) > MaxDownloadSize {
		return nil, "", fmt.Errorf("download failed: body exceeds %d bytes", MaxDownloadSize)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
