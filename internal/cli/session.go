package cli

import (
	"fmt"

	"github.com/faiface/beep"
	"go.uber.org/zap"

	"github.com/tessro/gifly/internal/audio"
	"github.com/tessro/gifly/internal/core"
	apperr "github.com/tessro/gifly/internal/errors"
	"github.com/tessro/gifly/internal/gallery"
	"github.com/tessro/gifly/internal/library"
	"github.com/tessro/gifly/internal/session"
	"github.com/tessro/gifly/internal/wizard"
)

// player bundles a controller with the speaker it drives.
type player struct {
	ctrl    *session.Controller
	speaker *audio.Speaker
	log     *zap.Logger
}

// selectTracks resolves file and directory arguments into tracks. With no
// arguments it falls back to the interactive picker over library.dir.
func selectTracks(args []string) ([]core.Track, error) {
	paths := args
	if wizard.NeedsFiles(args) {
		picked, err := wizard.NewInteractive(cfg.Library.Dir, cfg.Library.Extensions).PromptFiles()
		if err != nil {
			return nil, err
		}
		paths = picked
	}
	if len(paths) == 0 {
		return nil, apperr.WithSuggestion(apperr.ErrNoFiles, "Pass audio files or directories, e.g. 'gifly ui ~/Music'")
	}

	tracks, err := library.Select(paths, cfg.Library.Extensions)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, apperr.ErrNoFiles
	}
	return tracks, nil
}

func loadGallery(log *zap.Logger) *gallery.Gallery {
	if cfg.Gallery.Dir == "" {
		return gallery.Builtin()
	}
	g, err := gallery.FromDir(cfg.Gallery.Dir)
	if err != nil {
		log.Warn("falling back to built-in gallery", zap.String("dir", cfg.Gallery.Dir), zap.Error(err))
		return gallery.Builtin()
	}
	return g
}

// openPlayer opens the audio device and loads tracks into a new session.
func openPlayer(tracks []core.Track, log *zap.Logger) (*player, error) {
	speaker, err := audio.NewSpeaker(
		audio.WithTickInterval(cfg.Tick()),
		audio.WithSampleRate(beep.SampleRate(cfg.Audio.SampleRate)),
		audio.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("open audio output: %w", err)
	}

	ctrl := session.New(speaker,
		session.WithLogger(log),
		session.WithGallery(loadGallery(log)),
		session.WithGauges(cfg.GaugeSizes()),
		session.WithVolume(cfg.StartVolume()),
	)

	p := &player{ctrl: ctrl, speaker: speaker, log: log}
	if err := ctrl.Load(tracks); err != nil {
		_ = p.Close()
		return nil, err
	}
	return p, nil
}

// Close stops playback and releases the audio device.
func (p *player) Close() error {
	err := p.ctrl.Close()
	if serr := p.speaker.Close(); err == nil {
		err = serr
	}
	_ = p.log.Sync()
	return err
}
