package uploader_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplacard/nft-ingest/internal/media/uploader"
	"github.com/openplacard/nft-ingest/internal/mocks"
)

func TestProbe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := mocks.NewMockCommandRunner(ctrl)
	transcoder := uploader.NewFFmpegTranscoder(mockRunner, "", "")

	mockRunner.EXPECT().
		Run(gomock.Any(), "ffprobe",
			"-v", "error",
			"-select_streams", "v:0",
			"-show_entries", "format=format_name:stream=codec_name,width,height",
			"-of", "json",
			"/tmp/in.mp4").
		Return([]byte(`{
			"format": {"format_name": "mov,mp4,m4a,3gp,3g2,mj2"},
			"streams": [{"codec_name": "h264", "width": 1280, "height": 720}]
		}`), nil)

	probe, err := transcoder.Probe(context.Background(), "/tmp/in.mp4")
	require.NoError(t, err)
	assert.Equal(t, "h264", probe.CodecName)
	assert.Equal(t, 1280, probe.Width)
	assert.Equal(t, 720, probe.Height)
	assert.Contains(t, probe.FormatName, "mp4")
}

func TestProbeNoVideoStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := mocks.NewMockCommandRunner(ctrl)
	transcoder := uploader.NewFFmpegTranscoder(mockRunner, "", "")

	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"format": {"format_name": "mp3"}, "streams": []}`), nil)

	_, err := transcoder.Probe(context.Background(), "/tmp/audio.mp3")
	assert.Error(t, err)
}

func TestConvertGIFToMP4(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := mocks.NewMockCommandRunner(ctrl)
	transcoder := uploader.NewFFmpegTranscoder(mockRunner, "/usr/bin/ffmpeg", "")

	mockRunner.EXPECT().
		Run(gomock.Any(), "/usr/bin/ffmpeg",
			"-y",
			"-i", "/tmp/in.gif",
			"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
			"-movflags", "+faststart",
			"/tmp/out.mp4").
		Return(nil, nil)

	err := transcoder.ConvertGIFToMP4(context.Background(), "/tmp/in.gif", "/tmp/out.mp4")
	assert.NoError(t, err)
}

func TestReencodeToMP4(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := mocks.NewMockCommandRunner(ctrl)
	transcoder := uploader.NewFFmpegTranscoder(mockRunner, "/usr/bin/ffmpeg", "")

	mockRunner.EXPECT().
		Run(gomock.Any(), "/usr/bin/ffmpeg",
			"-y",
			"-i", "/tmp/in.webm",
			"-vf", "scale=trunc(1280/2)*2:trunc(720/2)*2",
			"-c:v", "libx264",
			"-movflags", "+faststart",
			"/tmp/out.mp4").
		Return(nil, nil)

	err := transcoder.ReencodeToMP4(context.Background(), "/tmp/in.webm", "/tmp/out.mp4", 1280, 720)
	assert.NoError(t, err)
}

func TestShouldReencode(t *testing.T) {
	tests := []struct {
		name     string
		probe    uploader.ProbeResult
		expected bool
	}{
		{
			name:     "h264 mp4 within bounds passes through",
			probe:    uploader.ProbeResult{FormatName: "mov,mp4,m4a,3gp,3g2,mj2", CodecName: "h264", Width: 1280, Height: 720},
			expected: false,
		},
		{
			name:     "oversized video re-encodes",
			probe:    uploader.ProbeResult{FormatName: "mov,mp4,m4a,3gp,3g2,mj2", CodecName: "h264", Width: 3840, Height: 2160},
			expected: true,
		},
		{
			name:     "non-h264 codec re-encodes",
			probe:    uploader.ProbeResult{FormatName: "mov,mp4,m4a,3gp,3g2,mj2", CodecName: "hevc", Width: 1280, Height: 720},
			expected: true,
		},
		{
			name:     "non-mp4 container re-encodes",
			probe:    uploader.ProbeResult{FormatName: "matroska,webm", CodecName: "h264", Width: 1280, Height: 720},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, uploader.ShouldReencode(&tt.probe, 1920, 1080))
		})
	}
}
