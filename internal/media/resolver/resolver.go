package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/logger"
	"github.com/openplacard/nft-ingest/internal/uri"
)

// sniffBytes is how much of the body the MIME sniffer reads
const sniffBytes = 512

// MetadataDoc is the indirect metadata document some contracts point at.
// It is preferred over field sniffing when it carries both a content type
// and a content URI.
type MetadataDoc struct {
	ContentType  string `json:"contentType"`
	ContentURI   string `json:"contentUri"`
	Image        string `json:"image"`
	AnimationURL string `json:"animation_url"`
}

// Config holds resolver timeouts and the gateway host
type Config struct {
	IPFSGateway  string
	FetchTimeout time.Duration
	SniffTimeout time.Duration
}

// Resolver determines the canonical media URL and content type for a token
type Resolver struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	config     Config
}

// NewResolver creates a media resolver
func NewResolver(httpClient adapter.HTTPClient, json adapter.JSON, config Config) *Resolver {
	if config.FetchTimeout == 0 {
		config.FetchTimeout = 8 * time.Second
	}
	if config.SniffTimeout == 0 {
		config.SniffTimeout = 5 * time.Second
	}
	return &Resolver{
		httpClient: httpClient,
		json:       json,
		config:     config,
	}
}

// FetchMetadata fetches and parses a metadata document with a hard timeout.
// When expectContentType is non-empty the response content type must share
// its prefix. A body that is not valid JSON is a distinct error from a
// failed fetch.
func (r *Resolver) FetchMetadata(ctx context.Context, metadataURI string, expectContentType string) (*MetadataDoc, error) {
	fetchURL := uri.RewriteToGateway(metadataURI, r.config.IPFSGateway)

	ctx, cancel := context.WithTimeout(ctx, r.config.FetchTimeout)
	defer cancel()

	resp, err := r.httpClient.GetResponse(ctx, fetchURL, nil)
	if err != nil {
		return nil, domain.AsTimeout("metadata fetch", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", zap.Error(err), zap.String("url", fetchURL))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUpstreamError("metadata", resp.StatusCode, "metadata fetch failed", nil)
	}

	if expectContentType != "" {
		actual := resp.Header.Get("Content-Type")
		if !strings.HasPrefix(actual, expectContentType) {
			return nil, domain.NewUpstreamError("metadata", resp.StatusCode,
				fmt.Sprintf("unexpected content type %q, want prefix %q", actual, expectContentType), nil)
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.AsTimeout("metadata fetch", err)
	}

	var doc MetadataDoc
	if err := r.json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata JSON: %w", err)
	}

	return &doc, nil
}

// ResolveMediaForToken determines the token's canonical media URL and
// content type. An indirect metadata document is preferred when it yields
// both a content type and a content URI; otherwise the token's raw media
// fields are tried in a fixed order, each verified with a MIME sniff. An
// exhausted chain yields ErrMediaUnresolvable.
func (r *Resolver) ResolveMediaForToken(ctx context.Context, token *domain.Token) (*domain.MediaAsset, error) {
	if token.MetadataURI != "" {
		if asset := r.resolveIndirect(ctx, token.MetadataURI); asset != nil {
			return asset, nil
		}
	}

	// Known file type from the chain metadata needs no sniff
	if token.Metadata.FileURL != "" && token.Metadata.FileType != "" {
		return &domain.MediaAsset{
			Kind:        domain.ClassifyMedia(token.Metadata.FileType),
			SourceURL:   uri.RewriteToGateway(token.Metadata.FileURL, r.config.IPFSGateway),
			ContentType: token.Metadata.FileType,
		}, nil
	}

	candidates := []string{
		token.Metadata.FileURL,
		token.AnimationURL,
		token.Image,
		token.ExternalURL,
		token.PreviewDescription,
		token.ImageURL,
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}

		mediaURL := uri.RewriteToGateway(candidate, r.config.IPFSGateway)
		contentType, err := r.SniffContentType(ctx, mediaURL)
		if err != nil {
			logger.Debug("media candidate rejected",
				zap.String("url", mediaURL), zap.Error(err))
			continue
		}

		return &domain.MediaAsset{
			Kind:        domain.ClassifyMedia(contentType),
			SourceURL:   mediaURL,
			ContentType: contentType,
		}, nil
	}

	return nil, domain.ErrMediaUnresolvable
}

// resolveIndirect tries the indirect metadata document. Any failure returns
// nil so the caller falls through to field sniffing.
func (r *Resolver) resolveIndirect(ctx context.Context, metadataURI string) *domain.MediaAsset {
	doc, err := r.FetchMetadata(ctx, metadataURI, "")
	if err != nil {
		logger.Debug("indirect metadata unusable, falling back to fields",
			zap.String("uri", metadataURI), zap.Error(err))
		return nil
	}

	if doc.ContentType == "" || doc.ContentURI == "" {
		return nil
	}

	return &domain.MediaAsset{
		Kind:        domain.ClassifyMedia(doc.ContentType),
		SourceURL:   uri.RewriteToGateway(doc.ContentURI, r.config.IPFSGateway),
		ContentType: doc.ContentType,
	}
}

// SniffContentType determines the content type of a remote resource without
// downloading it: a HEAD request first, then a partial-content read through
// the MIME sniffer when the header is missing or too generic.
func (r *Resolver) SniffContentType(ctx context.Context, mediaURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.SniffTimeout)
	defer cancel()

	resp, err := r.httpClient.Head(ctx, mediaURL)
	if err == nil {
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", mediaURL))
			}
		}()

		if resp.StatusCode == http.StatusOK {
			contentType := resp.Header.Get("Content-Type")
			if contentType != "" && !strings.HasPrefix(contentType, "application/octet-stream") {
				return contentType, nil
			}
		}
	}

	head, err := r.httpClient.GetPartialContent(ctx, mediaURL, sniffBytes)
	if err != nil {
		return "", domain.AsTimeout("mime sniff", err)
	}
	if len(head) == 0 {
		return "", fmt.Errorf("empty body from %s", mediaURL)
	}

	return mimetype.Detect(head).String(), nil
}

// FetchContent fetches textual content inline; anything else is returned as
// a URL reference without downloading the body.
func (r *Resolver) FetchContent(ctx context.Context, mediaURL string, contentType string) (content []byte, inline bool, err error) {
	if !strings.HasPrefix(contentType, "text/") {
		return nil, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.FetchTimeout)
	defer cancel()

	body, err := r.httpClient.GetBytes(ctx, mediaURL, nil)
	if err != nil {
		return nil, false, domain.AsTimeout("content fetch", err)
	}

	return body, true, nil
}
