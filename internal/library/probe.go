package library

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/vorbis"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"

	apperr "github.com/tessro/gifly/internal/errors"
)

// Info describes an audio file without playing it.
type Info struct {
	Path     string        `json:"path"`
	Name     string        `json:"name"`
	Format   string        `json:"format"`
	Duration time.Duration `json:"duration"`
	Size     int64         `json:"size"`
}

// mp3 frames decode to 16-bit stereo.
const mp3BytesPerFrame = 4

// Probe reads the header of an audio file to find its duration.
func Probe(path string) (Info, error) {
	info := Info{
		Path:   path,
		Name:   TrackFor(path).Name,
		Format: FormatOf(path),
	}

	f, err := os.Open(path)
	if err != nil {
		return info, err
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return info, err
	}
	info.Size = st.Size()

	switch info.Format {
	case "wav":
		info.Duration, err = probeWAV(f)
	case "mp3":
		info.Duration, err = probeMP3(f)
	case "flac":
		info.Duration, err = probeBeep(func() (beep.StreamSeekCloser, beep.Format, error) {
			return flac.Decode(f)
		})
	case "ogg", "oga":
		info.Duration, err = probeBeep(func() (beep.StreamSeekCloser, beep.Format, error) {
			return vorbis.Decode(f)
		})
	default:
		err = apperr.ErrUnsupportedFormat
	}
	if err != nil {
		return info, fmt.Errorf("probe %s: %w", path, err)
	}
	return info, nil
}

func probeWAV(f *os.File) (time.Duration, error) {
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return 0, errors.New("not a valid wav file")
	}
	return d.Duration()
}

func probeMP3(f *os.File) (time.Duration, error) {
	d, err := gomp3.NewDecoder(f)
	if err != nil {
		return 0, err
	}
	if d.SampleRate() <= 0 || d.Length() < 0 {
		return 0, apperr.ErrUnknownDuration
	}
	frames := d.Length() / mp3BytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(d.SampleRate()), nil
}

func probeBeep(decode func() (beep.StreamSeekCloser, beep.Format, error)) (time.Duration, error) {
	s, format, err := decode()
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.Close() }()
	return format.SampleRate.D(s.Len()), nil
}
