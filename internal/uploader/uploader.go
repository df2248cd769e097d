package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

// ReportFunc receives upload progress for one image as an integer 0-100.
// Values are non-decreasing for a given upload; nothing is reported after
// a failure.
type ReportFunc func(percent int)

// Uploader sends one local image to the remote asset store and reports
// transfer progress. Safe for concurrent use across images; each Upload
// call is independent.
type Uploader struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new asset uploader
func New(baseURL string) *Uploader {
	return &Uploader{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewWithHTTPClient creates a new asset uploader with a custom HTTP client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Uploader {
	return &Uploader{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// uploadResponse is the asset endpoint's success body
type uploadResponse struct {
	URL string `json:"url"`
}

// Upload posts image data as a multipart body (file part plus upload-target
// field) and returns the public URL of the stored asset. Progress is
// reported through report as the request body is consumed by the transport.
func (u *Uploader) Upload(ctx context.Context, filename, target, contentType string, data []byte, report ReportFunc) (string, error) {
	// Build multipart body into a buffer so the total size is known and
	// progress can be computed as a percentage.
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := createFilePart(writer, filename, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file part: %w", err)
	}
	if err := writer.WriteField("target", target); err != nil {
		return "", fmt.Errorf("failed to write target field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	body := &progressReader{
		r:      &buf,
		total:  int64(buf.Len()),
		report: report,
	}
	if report != nil {
		report(0)
	}

	// Create HTTP request
	url := fmt.Sprintf("%s/v1/assets", u.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.ContentLength = body.total

	// Execute request
	resp, err := u.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	// Check status code
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	// Parse response
	var uploadResp uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if uploadResp.URL == "" {
		return "", fmt.Errorf("no url in upload response")
	}

	return uploadResp.URL, nil
}

// createFilePart adds the file part, carrying the detected content type when
// one is known (CreateFormFile would pin it to application/octet-stream).
func createFilePart(writer *multipart.Writer, filename, contentType string) (io.Writer, error) {
	if contentType == "" {
		return writer.CreateFormFile("file", filename)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	return writer.CreatePart(header)
}

// progressReader reports fractional progress as the HTTP transport drains
// the request body. Reads only ever advance, so reported percentages are
// non-decreasing.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report ReportFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.read += int64(n)
		percent := int(pr.read * 100 / pr.total)
		if percent > 100 {
			percent = 100
		}
		if pr.report != nil && percent > pr.last {
			pr.last = percent
			pr.report(percent)
		}
	}
	return n, err
}
