package encoder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEncoderList = `Encoders:
 V..... = Video
 A..... = Audio
 S..... = Subtitle
 .F.... = Frame-level multithreading
 ..S... = Slice-level multithreading
 ...X.. = Codec is experimental
 ....B. = Supports draw_horiz_band
 .....D = Supports direct rendering method 1
 ------
 V....D ffv1                 FFmpeg video codec #1
 V....D png                  PNG (Portable Network Graphics) image
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (codec h264)
 V....D gif                  GIF (Graphics Interchange Format)
 A....D aac                  AAC (Advanced Audio Coding)
 S..... srt                  SubRip subtitle
`

func TestParseEncoderList(t *testing.T) {
	encoders := parseEncoderList([]byte(sampleEncoderList))

	for _, name := range []string{"ffv1", "png", "libx264", "gif"} {
		assert.True(t, encoders[name], "expected video encoder %s", name)
	}
	assert.False(t, encoders["aac"], "audio encoders are excluded")
	assert.False(t, encoders["srt"], "subtitle encoders are excluded")
	assert.False(t, encoders["="], "legend lines are skipped")
	assert.Len(t, encoders, 4)
}

func TestParseEncoderList_Empty(t *testing.T) {
	assert.Empty(t, parseEncoderList(nil))
}

func TestCheckProfile(t *testing.T) {
	bin := fakeFFmpeg(t, "cat <<'EOF'\n"+sampleEncoderList+"EOF")

	require.NoError(t, CheckProfile(context.Background(), bin, mkvProfile))
	require.NoError(t, CheckProfile(context.Background(), bin, mp4Profile))

	missing := Profile{Name: "VP9", Codec: "libvpx-vp9"}
	assert.Error(t, CheckProfile(context.Background(), bin, missing))
}

func TestLookupFFmpeg_Missing(t *testing.T) {
	_, err := LookupFFmpeg("definitely-not-an-installed-ffmpeg-binary")
	assert.Error(t, err)
}
