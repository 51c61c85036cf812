package uploader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/logger"
	"github.com/openplacard/nft-ingest/internal/media/fit"
	"github.com/openplacard/nft-ingest/internal/storage"
)

const defaultMaxDimension = 2048

// StoredMedia is the outcome of one media upload
type StoredMedia struct {
	Location domain.StoredFileLocation
	FileType string
	// URL is the public URL of the stored object, or the original source
	// URL when the media kind is not persisted
	URL string
	// External is true when the media stayed an external URL reference
	External bool
}

// Uploader persists token media into the storage bucket, converting animated
// GIFs to mp4 and re-encoding non-compliant or oversized videos on the way
type Uploader struct {
	httpClient adapter.HTTPClient
	storage    storage.ObjectStorage
	fs         adapter.FileSystem
	transcoder Transcoder
	maxWidth   int
	maxHeight  int
}

// NewUploader creates a media uploader. Videos wider or taller than the given
// bounds are scaled down at re-encode time.
func NewUploader(httpClient adapter.HTTPClient, objectStorage storage.ObjectStorage, fs adapter.FileSystem, transcoder Transcoder, maxWidth, maxHeight int) *Uploader {
	if maxWidth <= 0 {
		maxWidth = defaultMaxDimension
	}
	if maxHeight <= 0 {
		maxHeight = defaultMaxDimension
	}
	return &Uploader{
		httpClient: httpClient,
		storage:    objectStorage,
		fs:         fs,
		transcoder: transcoder,
		maxWidth:   maxWidth,
		maxHeight:  maxHeight,
	}
}

// UploadTokenMedia persists the token's media under
// nft/<tokenAddress>/<tokenID>.<ext>. Only image, video and gif media are
// copied; other kinds are returned as external URL references. An object
// already present at the target path short-circuits the transfer.
func (u *Uploader) UploadTokenMedia(ctx context.Context, fileURL, fileType, tokenID, tokenAddress string) (*StoredMedia, error) {
	kind := domain.ClassifyMedia(fileType)
	if !kind.Persistable() {
		return &StoredMedia{
			FileType: fileType,
			URL:      fileURL,
			External: true,
		}, nil
	}

	// GIFs are converted and videos normalized to mp4, which also changes
	// the target extension
	convertGIF := kind == domain.MediaKindGIF
	isVideo := kind == domain.MediaKindVideo
	contentType := fileType
	ext := extensionForMIME(fileType)
	if convertGIF || isVideo {
		contentType = "video/mp4"
		ext = "mp4"
	}

	objectPath := fmt.Sprintf("nft/%s/%s.%s", tokenAddress, tokenID, ext)

	exists, err := u.storage.Exists(ctx, objectPath)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Debug("media already stored, skipping transfer", zap.String("path", objectPath))
		return u.stored(objectPath, contentType), nil
	}

	if convertGIF {
		if err := u.uploadConvertedGIF(ctx, fileURL, objectPath, tokenID); err != nil {
			return nil, err
		}
		return u.stored(objectPath, contentType), nil
	}

	if isVideo {
		if err := u.uploadVideo(ctx, fileURL, objectPath, tokenID); err != nil {
			return nil, err
		}
		return u.stored(objectPath, contentType), nil
	}

	if err := u.streamUpload(ctx, fileURL, objectPath, contentType); err != nil {
		return nil, err
	}
	return u.stored(objectPath, contentType), nil
}

func (u *Uploader) stored(objectPath, contentType string) *StoredMedia {
	return &StoredMedia{
		Location: domain.StoredFileLocation{
			Bucket: u.storage.Bucket(),
			Path:   objectPath,
		},
		FileType: contentType,
		URL:      u.storage.PublicURL(objectPath),
	}
}

// streamUpload copies the source body straight into the bucket
func (u *Uploader) streamUpload(ctx context.Context, fileURL, objectPath, contentType string) error {
	resp, err := u.httpClient.GetResponse(ctx, fileURL, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch media: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", zap.Error(err), zap.String("url", fileURL))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return &adapter.StatusError{StatusCode: resp.StatusCode}
	}

	return u.storage.Upload(ctx, objectPath, resp.Body, contentType)
}

// uploadConvertedGIF downloads the GIF to a temp file, converts it to mp4
// and uploads the result
func (u *Uploader) uploadConvertedGIF(ctx context.Context, fileURL, objectPath, tokenID string) error {
	tempDir := u.fs.TempDir()
	inputPath := filepath.Join(tempDir, tokenID+".gif")
	outputPath := filepath.Join(tempDir, tokenID+".mp4")

	if err := u.download(ctx, fileURL, inputPath); err != nil {
		return err
	}
	defer u.removeQuietly(inputPath)

	if err := u.transcoder.ConvertGIFToMP4(ctx, inputPath, outputPath); err != nil {
		return err
	}
	defer u.removeQuietly(outputPath)

	converted, err := u.fs.Open(outputPath)
	if err != nil {
		return fmt.Errorf("failed to open converted file: %w", err)
	}
	defer func() {
		if err := converted.Close(); err != nil {
			logger.Warn("failed to close converted file", zap.Error(err), zap.String("path", outputPath))
		}
	}()

	return u.storage.Upload(ctx, objectPath, converted, "video/mp4")
}

// uploadVideo downloads the video to a temp file, probes it and re-encodes
// when it is oversized or not already h264 in an mp4 container. Compliant
// videos are uploaded as downloaded.
func (u *Uploader) uploadVideo(ctx context.Context, fileURL, objectPath, tokenID string) error {
	tempDir := u.fs.TempDir()
	inputPath := filepath.Join(tempDir, tokenID+".src")

	if err := u.download(ctx, fileURL, inputPath); err != nil {
		return err
	}
	defer u.removeQuietly(inputPath)

	probe, err := u.transcoder.Probe(ctx, inputPath)
	if err != nil {
		return err
	}

	uploadPath := inputPath
	if ShouldReencode(probe, u.maxWidth, u.maxHeight) {
		width, height, _ := fit.ScaleBestFit(probe.Width, probe.Height, u.maxWidth, u.maxHeight)
		outputPath := filepath.Join(tempDir, tokenID+".mp4")
		if err := u.transcoder.ReencodeToMP4(ctx, inputPath, outputPath, width, height); err != nil {
			return err
		}
		defer u.removeQuietly(outputPath)
		uploadPath = outputPath
	}

	body, err := u.fs.Open(uploadPath)
	if err != nil {
		return fmt.Errorf("failed to open video file: %w", err)
	}
	defer func() {
		if err := body.Close(); err != nil {
			logger.Warn("failed to close video file", zap.Error(err), zap.String("path", uploadPath))
		}
	}()

	return u.storage.Upload(ctx, objectPath, body, "video/mp4")
}

func (u *Uploader) download(ctx context.Context, fileURL, destPath string) error {
	resp, err := u.httpClient.GetResponse(ctx, fileURL, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch media: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", zap.Error(err), zap.String("url", fileURL))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return &adapter.StatusError{StatusCode: resp.StatusCode}
	}

	file, err := u.fs.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	return file.Close()
}

func (u *Uploader) removeQuietly(path string) {
	if err := u.fs.Remove(path); err != nil {
		logger.Warn("failed to remove temp file", zap.Error(err), zap.String("path", path))
	}
}

// extensionForMIME maps a MIME type to a file extension. Unknown subtypes
// fall back to the bare subtype with any +suffix stripped.
func extensionForMIME(mimeType string) string {
	base := mimeType
	if idx := strings.Index(base, ";"); idx >= 0 {
		base = strings.TrimSpace(base[:idx])
	}

	switch base {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/svg+xml":
		return "svg"
	case "video/mp4":
		return "mp4"
	case "video/quicktime":
		return "mov"
	case "video/webm":
		return "webm"
	}

	if idx := strings.Index(base, "/"); idx >= 0 {
		subtype := base[idx+1:]
		if plus := strings.Index(subtype, "+"); plus >= 0 {
			subtype = subtype[:plus]
		}
		return subtype
	}
	return "bin"
}
