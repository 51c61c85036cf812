package uploader

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/media/fit"
)

// ProbeResult is the subset of stream/container info the re-encode decision
// needs
type ProbeResult struct {
	FormatName string
	CodecName  string
	Width      int
	Height     int
}

// Transcoder defines the interface for media transcoding to enable mocking.
// The actual work happens in the ffmpeg/ffprobe binaries; this wraps the
// subprocess boundary.
//
//go:generate mockgen -source=transcode.go -destination=../../mocks/transcoder.go -package=mocks -mock_names=Transcoder=MockTranscoder
type Transcoder interface {
	// ConvertGIFToMP4 converts an animated GIF into an mp4 file
	ConvertGIFToMP4(ctx context.Context, inputPath, outputPath string) error

	// ReencodeToMP4 re-encodes a video into an h264 mp4 at the given target
	// dimensions
	ReencodeToMP4(ctx context.Context, inputPath, outputPath string, width, height int) error

	// Probe inspects a media file's container, codec and dimensions
	Probe(ctx context.Context, path string) (*ProbeResult, error)
}

// FFmpegTranscoder implements Transcoder via the ffmpeg and ffprobe binaries
type FFmpegTranscoder struct {
	runner      adapter.CommandRunner
	ffmpegPath  string
	ffprobePath string
}

// NewFFmpegTranscoder creates a transcoder using the given binary paths
func NewFFmpegTranscoder(runner adapter.CommandRunner, ffmpegPath, ffprobePath string) *FFmpegTranscoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegTranscoder{
		runner:      runner,
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

// ConvertGIFToMP4 converts an animated GIF into an mp4 file. h264 needs even
// dimensions, hence the trunc scale filter.
func (t *FFmpegTranscoder) ConvertGIFToMP4(ctx context.Context, inputPath, outputPath string) error {
	output, err := t.runner.Run(ctx, t.ffmpegPath,
		"-y",
		"-i", inputPath,
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"-movflags", "+faststart",
		outputPath,
	)
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w: %s", err, string(output))
	}
	return nil
}

// ReencodeToMP4 re-encodes a video into an h264 mp4 at the given target
// dimensions. h264 needs even dimensions, hence the trunc scale filter.
func (t *FFmpegTranscoder) ReencodeToMP4(ctx context.Context, inputPath, outputPath string, width, height int) error {
	output, err := t.runner.Run(ctx, t.ffmpegPath,
		"-y",
		"-i", inputPath,
		"-vf", fmt.Sprintf("scale=trunc(%d/2)*2:trunc(%d/2)*2", width, height),
		"-c:v", "libx264",
		"-movflags", "+faststart",
		outputPath,
	)
	if err != nil {
		return fmt.Errorf("ffmpeg re-encode failed: %w: %s", err, string(output))
	}
	return nil
}

// Probe inspects a media file's container, codec and dimensions
func (t *FFmpegTranscoder) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	output, err := t.runner.Run(ctx, t.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "format=format_name:stream=codec_name,width,height",
		"-of", "json",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w: %s", err, string(output))
	}

	var probe struct {
		Format struct {
			FormatName string `json:"format_name"`
		} `json:"format"`
		Streams []struct {
			CodecName string `json:"codec_name"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return nil, fmt.Errorf("no video stream in %s", path)
	}

	return &ProbeResult{
		FormatName: probe.Format.FormatName,
		CodecName:  probe.Streams[0].CodecName,
		Width:      probe.Streams[0].Width,
		Height:     probe.Streams[0].Height,
	}, nil
}

// ShouldReencode decides whether a video needs re-encoding before upload:
// only when it exceeds the size bounds or is not already h264 in an mp4
// container.
func ShouldReencode(probe *ProbeResult, maxWidth, maxHeight int) bool {
	_, _, changed := fit.ScaleBestFit(probe.Width, probe.Height, maxWidth, maxHeight)
	if changed {
		return true
	}

	isMP4 := strings.Contains(probe.FormatName, "mp4")
	isH264 := probe.CodecName == "h264"
	return !isMP4 || !isH264
}
