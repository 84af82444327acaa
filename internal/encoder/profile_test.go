package encoder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/linuxmatters/vmaganimate/internal/config"
)

func TestBuildArgs(t *testing.T) {
	testCases := []struct {
		name string
		mode config.Mode
		fps  int
		want []string
	}{
		{
			name: "mkv lossless with alpha",
			mode: config.ModeMKV,
			fps:  30,
			want: []string{
				"-y", "-f", "image2pipe", "-vcodec", "png", "-r", "30", "-i", "-",
				"-vcodec", "ffv1", "-level", "3", "-threads", "8", "-coder", "1",
				"-context", "1", "-g", "1", "-slices", "24", "-slicecrc", "1",
				"-pix_fmt", "yuva444p",
				"-r", "30", "out.mkv",
			},
		},
		{
			name: "mp4 forces yuv420p",
			mode: config.ModeMP4,
			fps:  30,
			want: []string{
				"-y", "-f", "image2pipe", "-vcodec", "png", "-r", "30", "-i", "-",
				"-pix_fmt", "yuv420p",
				"-r", "30", "out.mp4",
			},
		},
		{
			name: "gif uses encoder defaults",
			mode: config.ModeGIF,
			fps:  10,
			want: []string{
				"-y", "-f", "image2pipe", "-vcodec", "png", "-r", "10", "-i", "-",
				"-r", "10", "out.gif",
			},
		},
		{
			name: "other containers use encoder defaults",
			mode: config.ModeVideo,
			fps:  25,
			want: []string{
				"-y", "-f", "image2pipe", "-vcodec", "png", "-r", "25", "-i", "-",
				"-r", "25", "out.webm",
			},
		},
	}

	outputs := map[config.Mode]string{
		config.ModeMKV:   "out.mkv",
		config.ModeMP4:   "out.mp4",
		config.ModeGIF:   "out.gif",
		config.ModeVideo: "out.webm",
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildArgs(ProfileFor(tc.mode), tc.fps, outputs[tc.mode])
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("BuildArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildArgs_DoesNotAliasProfile(t *testing.T) {
	p := ProfileFor(config.ModeMP4)
	_ = BuildArgs(p, 30, "a.mp4")
	_ = BuildArgs(p, 60, "b.mp4")
	if diff := cmp.Diff([]string{"-pix_fmt", "yuv420p"}, ProfileFor(config.ModeMP4).Args); diff != "" {
		t.Errorf("profile args modified (-want +got):\n%s", diff)
	}
}

func TestProfileFor_Codec(t *testing.T) {
	if got := ProfileFor(config.ModeMKV).Codec; got != "ffv1" {
		t.Errorf("mkv codec = %q, want ffv1", got)
	}
	if got := ProfileFor(config.ModeMP4).Codec; got != "" {
		t.Errorf("mp4 codec = %q, want encoder default", got)
	}
}
