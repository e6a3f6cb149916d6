package helpvideos

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
	"github.com/xfrr/goffmpeg/transcoder"
)

// DurationProber determines the playback duration of a local video file.
type DurationProber interface {
	ProbeDuration(path string) (time.Duration, error)
}

// FFmpegDurationProber implements DurationProber using goffmpeg's probe
type FFmpegDurationProber struct {
	logger logging.Logger
}

// NewFFmpegDurationProber creates a new FFmpeg-based duration prober
func NewFFmpegDurationProber(logger logging.Logger) *FFmpegDurationProber {
	if logger == nil {
		logger = logging.NopLogger
	}

	return &FFmpegDurationProber{
		logger: logger,
	}
}

// ProbeDuration reads the container metadata of the file at path and returns
// its playback duration.
func (p *FFmpegDurationProber) ProbeDuration(path string) (time.Duration, error) {
	trans := new(transcoder.Transcoder)
	if err := trans.Initialize(path, ""); err != nil {
		return 0, fmt.Errorf("failed to probe video metadata: %w", err)
	}

	durationStr := strings.TrimSpace(trans.MediaFile().Metadata().Format.Duration)
	seconds, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse probed duration %q: %w", durationStr, err)
	}

	duration := time.Duration(seconds * float64(time.Second))
	p.logger.Debug("probed video duration", "path", path, "duration", duration)

	return duration, nil
}

// FormatDuration renders a duration as zero-padded MM:SS. Minutes are not
// capped at 59; a 90-minute video formats as "90:00".
func FormatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
