// ABOUTME: Looping alert playback using oto and go-mp3
// ABOUTME: Starts and stops an audible alert in response to control signals
package audio

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

// Alerter plays a decoded MP3 alert in a loop. Start and Stop are the
// side-effect hooks the connection supervisor triggers on sentinel
// payloads.
type Alerter struct {
	mu         sync.Mutex
	pcm        []byte
	sampleRate int
	volume     int
	muted      bool
	otoCtx     *oto.Context
	player     *oto.Player
}

// NewAlerter decodes the MP3 asset at path into PCM. The audio device
// is not opened until the first Start.
func NewAlerter(path string) (*Alerter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open alert sound: %w", err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode alert sound: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to read alert PCM: %w", err)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("alert sound %s decoded to zero samples", path)
	}

	return newAlerterPCM(pcm, dec.SampleRate()), nil
}

// newAlerterPCM creates an alerter from raw 16-bit stereo PCM.
func newAlerterPCM(pcm []byte, sampleRate int) *Alerter {
	return &Alerter{
		pcm:        pcm,
		sampleRate: sampleRate,
		volume:     100,
	}
}

// Start begins looping playback. Calling it while already looping is a
// no-op, so repeated background signals do not stack players.
func (a *Alerter) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.player != nil {
		return nil
	}

	if a.otoCtx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   a.sampleRate,
			ChannelCount: 2, // go-mp3 always decodes to stereo
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return fmt.Errorf("failed to create oto context: %w", err)
		}
		<-readyChan
		a.otoCtx = ctx
		log.Printf("Audio output initialized: %dHz stereo", a.sampleRate)
	}

	a.player = a.otoCtx.NewPlayer(newLoopReader(a.pcm))
	a.player.SetVolume(getVolumeMultiplier(a.volume, a.muted))
	a.player.Play()
	log.Printf("Alert loop started")

	return nil
}

// Stop halts the looping alert.
func (a *Alerter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *Alerter) stopLocked() {
	if a.player == nil {
		return
	}
	a.player.Pause()
	if err := a.player.Close(); err != nil {
		log.Printf("Error closing alert player: %v", err)
	}
	a.player = nil
	log.Printf("Alert loop stopped")
}

// Looping reports whether the alert is currently playing.
func (a *Alerter) Looping() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.player != nil
}

// SetVolume sets the volume (0-100)
func (a *Alerter) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.volume = volume
	if a.player != nil {
		a.player.SetVolume(getVolumeMultiplier(a.volume, a.muted))
	}
}

// SetMuted sets mute state
func (a *Alerter) SetMuted(muted bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.muted = muted
	if a.player != nil {
		a.player.SetVolume(getVolumeMultiplier(a.volume, a.muted))
	}
}

// Close stops playback and suspends the audio device.
func (a *Alerter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
	if a.otoCtx != nil {
		a.otoCtx.Suspend()
	}
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
