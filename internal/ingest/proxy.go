// Package ingest forwards uploaded statements to the external ingestion
// workflow. The workflow's trigger endpoint does not reliably accept raw
// multipart bodies, so the payload is re-encoded as base64 inside a JSON
// envelope before forwarding.
package ingest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight/internal/domain"
)

const defaultMimeType = "text/csv"

// Archiver stores a copy of the raw upload before it is forwarded. Archival
// is best-effort: failures are logged and never block ingestion.
type Archiver interface {
	Archive(ctx context.Context, filename, mimeType string, content []byte) (string, error)
}

// Proxy forwards uploads to the workflow trigger endpoint.
type Proxy struct {
	webhookURL string
	client     *http.Client
	archiver   Archiver
	log        zerolog.Logger
}

// NewProxy wires a Proxy. archiver may be nil to disable archival; client
// may be nil to use http.DefaultClient.
func NewProxy(webhookURL string, client *http.Client, archiver Archiver, log zerolog.Logger) *Proxy {
	if client == nil {
		client = http.DefaultClient
	}
	return &Proxy{
		webhookURL: webhookURL,
		client:     client,
		archiver:   archiver,
		log:        log,
	}
}

// triggerPayload is the JSON envelope the workflow trigger expects.
type triggerPayload struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Content  string `json:"content"`
}

// Forward re-encodes the upload and posts it to the workflow trigger. The
// trigger's response body is returned verbatim as an opaque acknowledgment;
// the actual ingestion runs asynchronously on the workflow side. A
// non-success status surfaces as an UpstreamError carrying the trigger's
// status code and body.
func (p *Proxy) Forward(ctx context.Context, filename, mimeType string, content []byte) (string, error) {
	if p.webhookURL == "" {
		return "", &domain.ConfigError{Missing: "ingestion webhook URL"}
	}

	if mimeType == "" {
		mimeType = defaultMimeType
	}

	if p.archiver != nil {
		if uri, err := p.archiver.Archive(ctx, filename, mimeType, content); err != nil {
			p.log.Warn().Err(err).Str("filename", filename).Msg("Failed to archive upload")
		} else {
			p.log.Info().Str("uri", uri).Msg("Upload archived")
		}
	}

	body, err := json.Marshal(triggerPayload{
		FileName: filename,
		MimeType: mimeType,
		Content:  base64.StdEncoding.EncodeToString(content),
	})
	if err != nil {
		return "", err
	}

	p.log.Info().
		Str("filename", filename).
		Str("mime_type", mimeType).
		Int("bytes", len(content)).
		Msg("Forwarding upload to ingestion workflow")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.webhookURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &domain.UpstreamError{Service: "ingestion workflow", Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.UpstreamError{Service: "ingestion workflow", StatusCode: resp.StatusCode, Body: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.UpstreamError{
			Service:    "ingestion workflow",
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return string(respBody), nil
}
