package encoder

import (
	"strconv"

	"github.com/linuxmatters/vmaganimate/internal/config"
)

// Profile holds the codec arguments chosen for an output container
type Profile struct {
	Name string
	// Codec is the encoder ffmpeg must provide, empty for container defaults
	Codec string
	Args  []string
}

var (
	// mkvProfile is lossless FFV1 with alpha, tuned for sliced multithreaded decoding
	mkvProfile = Profile{
		Name:  "FFV1 lossless (yuva444p)",
		Codec: "ffv1",
		Args: []string{
			"-vcodec", "ffv1",
			"-level", "3",
			"-threads", "8",
			"-coder", "1",
			"-context", "1",
			"-g", "1",
			"-slices", "24",
			"-slicecrc", "1",
			"-pix_fmt", "yuva444p",
		},
	}

	// mp4Profile keeps the default codec but forces a pixel format players accept
	mp4Profile = Profile{
		Name: "MP4 (yuv420p)",
		Args: []string{"-pix_fmt", "yuv420p"},
	}

	gifProfile = Profile{Name: "animated GIF"}

	defaultProfile = Profile{Name: "encoder defaults"}
)

// ProfileFor selects encoder arguments for an output mode
func ProfileFor(mode config.Mode) Profile {
	switch mode {
	case config.ModeMKV:
		return mkvProfile
	case config.ModeMP4:
		return mp4Profile
	case config.ModeGIF:
		return gifProfile
	default:
		return defaultProfile
	}
}

// BuildArgs assembles the ffmpeg command line: PNG frames from stdin at fps,
// the profile's codec arguments, then the output at the same rate
func BuildArgs(profile Profile, fps int, outputPath string) []string {
	rate := strconv.Itoa(fps)
	args := []string{
		"-y",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-r", rate,
		"-i", "-",
	}
	args = append(args, profile.Args...)
	args = append(args, "-r", rate, outputPath)
	return args
}
