package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"

	apperr "github.com/tessro/gifly/internal/errors"
)

// volumeBase is the exponent base for effects.Volume. With base 2 a level l
// maps to Volume = log2(l), which makes the gain exactly l.
const volumeBase = 2

// decode picks a beep decoder by container format. rc is closed on failure.
func decode(format string, rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		s   beep.StreamSeekCloser
		f   beep.Format
		err error
	)
	switch format {
	case "mp3":
		s, f, err = mp3.Decode(rc)
	case "wav":
		s, f, err = wav.Decode(rc)
	case "flac":
		s, f, err = flac.Decode(rc)
	case "ogg", "oga":
		s, f, err = vorbis.Decode(rc)
	default:
		err = fmt.Errorf("%q: %w", format, apperr.ErrUnsupportedFormat)
	}
	if err != nil {
		_ = rc.Close()
		return nil, beep.Format{}, err
	}
	return s, f, nil
}

// volumeFor maps a linear level in [0,1] onto effects.Volume settings.
func volumeFor(level float64) (volume float64, silent bool) {
	if math.IsNaN(level) || level <= 0 {
		return 0, true
	}
	if level >= 1 {
		return 0, false
	}
	return math.Log2(level), false
}

func clampLevel(level float64) float64 {
	switch {
	case math.IsNaN(level), level < 0:
		return 0
	case level > 1:
		return 1
	default:
		return level
	}
}
