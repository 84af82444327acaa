package encoder

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// LookupFFmpeg resolves the ffmpeg binary through PATH so a missing encoder
// is reported before any frame is rendered
func LookupFFmpeg(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found (%s): install ffmpeg or pass --ffmpeg: %w", name, err)
	}
	return path, nil
}

// DetectEncoders asks ffmpeg which video encoders it was built with
func DetectEncoders(ctx context.Context, ffmpegPath string) (map[string]bool, error) {
	out, err := exec.CommandContext(ctx, ffmpegPath, "-hide_banner", "-encoders").Output()
	if err != nil {
		return nil, fmt.Errorf("listing ffmpeg encoders: %w", err)
	}
	return parseEncoderList(out), nil
}

// CheckProfile fails when the profile needs a codec ffmpeg does not provide
func CheckProfile(ctx context.Context, ffmpegPath string, profile Profile) error {
	if profile.Codec == "" {
		return nil
	}
	encoders, err := DetectEncoders(ctx, ffmpegPath)
	if err != nil {
		return err
	}
	if !encoders[profile.Codec] {
		return fmt.Errorf("ffmpeg at %s has no %s encoder, required for %s", ffmpegPath, profile.Codec, profile.Name)
	}
	return nil
}

// parseEncoderList reads the table printed by `ffmpeg -encoders`:
//
//	V....D ffv1                 FFmpeg video codec #1
//
// Only video encoders (capability column starting with V) are returned.
func parseEncoderList(out []byte) map[string]bool {
	encoders := make(map[string]bool)
	inTable := false

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !inTable {
			// The legend ends with a dashed separator line
			if strings.HasPrefix(line, "---") {
				inTable = true
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 || len(fields[0]) != 6 {
			continue
		}
		if fields[0][0] == 'V' {
			encoders[fields[1]] = true
		}
	}
	return encoders
}
