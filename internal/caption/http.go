package caption

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client implements Service against the caption backend's HTTP contract:
// multipart POST {base}/v1/generate-caption with one "images" file part per
// image and an optional "prompt" field, answered by {"caption": "..."}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an HTTP caption client. The timeout bounds the whole
// call, connection included.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Generate performs a single captioning attempt. Every failure mode (an
// unreadable image, transport error, non-2xx status, malformed body) wraps
// ErrService.
func (c *Client) Generate(ctx context.Context, imageURIs []string, prompt string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, uri := range imageURIs {
		if err := writeImagePart(writer, uri); err != nil {
			return "", err
		}
	}
	if prompt != "" {
		if err := writer.WriteField("prompt", prompt); err != nil {
			return "", fmt.Errorf("%w: writing prompt field: %v", ErrService, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: finalizing request body: %v", ErrService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate-caption", &body)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrService, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %s", ErrService, resp.Status)
	}

	var payload struct {
		Caption string `json:"caption"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrService, err)
	}
	return payload.Caption, nil
}

func writeImagePart(writer *multipart.Writer, uri string) error {
	path := localPath(uri)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: reading image %s: %v", ErrService, uri, err)
	}
	defer f.Close()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="images"; filename=%q`, filepath.Base(path)))
	header.Set("Content-Type", contentTypeFor(path))

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("%w: creating image part: %v", ErrService, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("%w: copying image %s: %v", ErrService, uri, err)
	}
	return nil
}

// localPath maps an image locator to a filesystem path. file:// URIs are
// unwrapped; anything else is treated as a plain path.
func localPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if u, err := url.Parse(uri); err == nil && u.Path != "" {
			return u.Path
		}
		return strings.TrimPrefix(uri, "file://")
	}
	return uri
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
