//go:build !ci

// Package sound plays short effects for cards, tricks and the end of a game.
package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

type SoundManager struct {
	dir     string
	buffers map[string]*beep.Buffer
	enabled bool
}

// NewSoundManager creates a manager that loads effects from dir on Init
func NewSoundManager(dir string) *SoundManager {
	return &SoundManager{
		dir:     dir,
		buffers: make(map[string]*beep.Buffer),
	}
}

func (sm *SoundManager) Init() error {
	sampleRate := beep.SampleRate(44100)
	// Smaller buffer for lower latency
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	sm.enabled = true

	return sm.loadSoundFiles(sampleRate)
}

// loadSoundFiles loads every .mp3 and .wav file in the sound directory, keyed by base name
func (sm *SoundManager) loadSoundFiles(sampleRate beep.SampleRate) error {
	files, err := os.ReadDir(sm.dir)
	if err != nil {
		// A missing directory just means no sounds
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		baseName := strings.TrimSuffix(name, filepath.Ext(name))

		// Skip broken files, keep loading the rest
		_ = sm.loadSoundFile(name, baseName, ext, sampleRate)
	}
	return nil
}

func (sm *SoundManager) loadSoundFile(name, baseName, ext string, sampleRate beep.SampleRate) error {
	f, err := os.Open(filepath.Clean(filepath.Join(sm.dir, name)))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   4,
	})
	buffer.Append(resampled)

	sm.buffers[baseName] = buffer
	return nil
}

// Loaded reports whether an effect with the given name is available
func (sm *SoundManager) Loaded(name string) bool {
	_, ok := sm.buffers[name]
	return ok
}

func (sm *SoundManager) Play(name string) {
	if !sm.enabled {
		return
	}
	buffer, ok := sm.buffers[name]
	if !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.enabled = false
}
