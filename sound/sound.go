// Package sound plays audio through two pools: short one-shot effects
// and looping music tracks. Music playback is exclusive; starting a
// track stops the current one, optionally cross-faded. A tone
// synthesizer covers effects that need no asset at all.
package sound

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Player owns the audio device and the decoded sample pools. One
// Player exists per engine; it is not safe for concurrent use.
type Player struct {
	sampleRate int
	ctx        *audio.Context
	logger     *log.Logger
	fetch      func(string) ([]byte, error)
	muted      bool

	effects map[string][]byte
	music   map[string][]byte

	current     *audio.Player
	currentName string
	fadingOut   *audio.Player
	fadeLeft    float64
	fadeDur     float64
}

// NewPlayer creates a player producing audio at the given sample rate.
// The audio device itself is opened lazily on first playback.
func NewPlayer(sampleRate int, logger *log.Logger) *Player {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		sampleRate: sampleRate,
		logger:     logger,
		fetch:      os.ReadFile,
		effects:    map[string][]byte{},
		music:      map[string][]byte{},
	}
}

// SetFetch replaces how raw audio bytes are read, normally with the
// engine's asset cache.
func (p *Player) SetFetch(fn func(string) ([]byte, error)) {
	if fn != nil {
		p.fetch = fn
	}
}

// SampleRate returns the player's output sample rate.
func (p *Player) SampleRate() int {
	return p.sampleRate
}

// SetMuted silences all output. Effects started while muted are
// dropped; music keeps advancing at zero volume so unmuting resumes
// in place.
func (p *Player) SetMuted(m bool) {
	if p.muted == m {
		return
	}
	p.muted = m
	if p.current != nil && p.fadeLeft <= 0 {
		p.current.SetVolume(p.gain())
	}
	if p.fadingOut != nil && m {
		p.fadingOut.SetVolume(0)
	}
}

// Muted reports whether output is silenced.
func (p *Player) Muted() bool { return p.muted }

func (p *Player) gain() float64 {
	if p.muted {
		return 0
	}
	return 1
}

func (p *Player) context() *audio.Context {
	if p.ctx == nil {
		p.ctx = audio.NewContext(p.sampleRate)
	}
	return p.ctx
}

// LoadEffect fetches and decodes a sound effect into the named buffer.
// The format comes from the path extension: wav, ogg or mp3.
func (p *Player) LoadEffect(name, src string) error {
	pcm, err := p.load(src)
	if err != nil {
		return err
	}
	p.effects[name] = pcm
	return nil
}

// LoadMusic fetches and decodes a music track into the named buffer.
func (p *Player) LoadMusic(name, src string) error {
	pcm, err := p.load(src)
	if err != nil {
		return err
	}
	p.music[name] = pcm
	return nil
}

func (p *Player) load(src string) ([]byte, error) {
	data, err := p.fetch(src)
	if err != nil {
		return nil, fmt.Errorf("sound: read %s: %w", src, err)
	}
	pcm, err := p.decode(src, data)
	if err != nil {
		return nil, fmt.Errorf("sound: decode %s: %w", src, err)
	}
	return pcm, nil
}

func (p *Player) decode(src string, data []byte) ([]byte, error) {
	var stream io.Reader
	var err error
	switch strings.ToLower(path.Ext(src)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(p.sampleRate, bytes.NewReader(data))
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(p.sampleRate, bytes.NewReader(data))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(p.sampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported audio format %q", path.Ext(src))
	}
	if err != nil {
		return nil, err
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	// Whole sample frames only.
	return pcm[:len(pcm)-len(pcm)%4], nil
}

// HasEffect reports whether a loaded effect exists under the name.
func (p *Player) HasEffect(name string) bool {
	_, ok := p.effects[name]
	return ok
}

// HasMusic reports whether a loaded track exists under the name.
func (p *Player) HasMusic(name string) bool {
	_, ok := p.music[name]
	return ok
}

// PlayOpts adjusts one playback. Zero values mean volume 1, rate 1,
// no loop.
type PlayOpts struct {
	Volume float64
	Rate   float64
	Loop   bool
}

// Handle controls one playing effect. The zero and nil handles are
// inert.
type Handle struct {
	player *audio.Player
}

// Stop halts and releases the effect.
func (h *Handle) Stop() {
	if h == nil || h.player == nil {
		return
	}
	h.player.Pause()
	h.player.Close()
	h.player = nil
}

// Playing reports whether the effect is still audible.
func (h *Handle) Playing() bool {
	return h != nil && h.player != nil && h.player.IsPlaying()
}

// PlayEffect starts a loaded effect. A missing name logs and returns
// an inert handle; playback never fails hard.
func (p *Player) PlayEffect(name string, opts PlayOpts) *Handle {
	pcm, ok := p.effects[name]
	if !ok {
		p.logger.Warn("unknown sound effect", "name", name)
		return &Handle{}
	}
	return p.playPCM(pcm, opts)
}

// Tone synthesizes and plays a waveform. Frequency in Hz, duration in
// seconds.
func (p *Player) Tone(freq, duration float64, wave Waveform, volume float64) *Handle {
	pcm := Synthesize(p.sampleRate, wave, freq, duration, volume)
	if pcm == nil {
		return &Handle{}
	}
	return p.playPCM(pcm, PlayOpts{Volume: 1})
}

func (p *Player) playPCM(pcm []byte, opts PlayOpts) *Handle {
	if p.muted {
		return &Handle{}
	}
	if opts.Rate != 0 && opts.Rate != 1 {
		pcm = resample(pcm, opts.Rate)
	}
	if len(pcm) == 0 {
		return &Handle{}
	}
	volume := opts.Volume
	if volume == 0 {
		volume = 1
	}

	var src io.Reader = bytes.NewReader(pcm)
	if opts.Loop {
		src = audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	}
	player, err := p.context().NewPlayer(src)
	if err != nil {
		p.logger.Warn("could not start playback", "error", err)
		return &Handle{}
	}
	player.SetVolume(min(max(volume, 0), 1))
	player.Play()
	return &Handle{player: player}
}

// PlayMusic starts the named track on loop, replacing whatever is
// playing. A positive fade cross-fades between the tracks over that
// many seconds.
func (p *Player) PlayMusic(name string, fade float64) {
	if name == p.currentName && p.current != nil {
		return
	}
	pcm, ok := p.music[name]
	if !ok {
		p.logger.Warn("unknown music track", "name", name)
		return
	}

	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := p.context().NewPlayer(loop)
	if err != nil {
		p.logger.Warn("could not start music", "name", name, "error", err)
		return
	}

	p.retireCurrent(fade)
	if fade > 0 {
		player.SetVolume(0)
		p.fadeDur = fade
		p.fadeLeft = fade
	} else {
		player.SetVolume(p.gain())
	}
	player.Play()
	p.current = player
	p.currentName = name
}

// StopMusic halts the current track, fading it out over the given
// seconds when positive.
func (p *Player) StopMusic(fade float64) {
	p.retireCurrent(fade)
	p.current = nil
	p.currentName = ""
	if fade > 0 {
		p.fadeDur = fade
		p.fadeLeft = fade
	}
}

func (p *Player) retireCurrent(fade float64) {
	if p.fadingOut != nil {
		p.fadingOut.Close()
		p.fadingOut = nil
	}
	if p.current == nil {
		return
	}
	if fade > 0 {
		p.fadingOut = p.current
	} else {
		p.current.Pause()
		p.current.Close()
	}
}

// CurrentMusic returns the name of the playing track, or empty.
func (p *Player) CurrentMusic() string {
	return p.currentName
}

// Update advances cross-fades. The engine calls this once per frame.
func (p *Player) Update(dt float64) {
	if p.fadeLeft <= 0 {
		return
	}
	p.fadeLeft = max(p.fadeLeft-dt, 0)
	k := 1 - p.fadeLeft/p.fadeDur
	if p.current != nil {
		p.current.SetVolume(k * p.gain())
	}
	if p.fadingOut != nil {
		p.fadingOut.SetVolume((1 - k) * p.gain())
		if p.fadeLeft == 0 {
			p.fadingOut.Close()
			p.fadingOut = nil
		}
	}
}
