package assets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/milk9111/podescape/ecs/component"
)

// SampleRate is the rate of the shared audio context and of every
// synthesized buffer.
const SampleRate = 44100

// SoundDir is checked for <name>.wav before a built-in tone is synthesized.
var SoundDir = filepath.Join("assets", "sounds")

var ErrUnknownSound = errors.New("assets: unknown sound")

type waveform int

const (
	waveSine waveform = iota
	waveSquare
	waveNoise
)

// tone describes a synthesized clip: notes played back to back, each note
// seconds long. A zero note is a rest.
type tone struct {
	notes  []float64
	note   float64
	wave   waveform
	volume float64
	decay  bool
	// sweep is added to each note's frequency per second.
	sweep float64
}

var tones = map[string]tone{
	"keyboard":       {notes: []float64{1, 0, 1, 1, 0, 1, 0, 1}, note: 0.04, wave: waveNoise, volume: 0.25, decay: true},
	"beat_level":     {notes: []float64{523.25, 659.25, 783.99, 1046.5}, note: 0.1, wave: waveSquare, volume: 0.2, decay: true},
	"hit_wall":       {notes: []float64{110}, note: 0.18, wave: waveSquare, volume: 0.3, decay: true},
	"elevator_doors": {notes: []float64{660, 880}, note: 0.25, wave: waveSine, volume: 0.3, decay: true},
	"elevator":       {notes: []float64{82}, note: 3, wave: waveSine, volume: 0.25},
	"screen_off":     {notes: []float64{880}, note: 0.4, wave: waveSine, volume: 0.3, decay: true, sweep: -1800},
	"cheer":          {notes: []float64{1}, note: 1.5, wave: waveNoise, volume: 0.2, decay: true},
	"hm":             {notes: []float64{180}, note: 0.3, wave: waveSine, volume: 0.35, decay: true, sweep: -40},
	"hm_hm":          {notes: []float64{180, 0, 200}, note: 0.22, wave: waveSine, volume: 0.35, decay: true},

	"standard":  {notes: []float64{261.63, 0, 329.63, 0, 392, 0, 329.63, 0}, note: 0.5, wave: waveSine, volume: 0.2},
	"monitor_0": {notes: []float64{220, 261.63, 329.63, 261.63}, note: 0.25, wave: waveSquare, volume: 0.12},
	"monitor_1": {notes: []float64{246.94, 293.66, 369.99, 293.66}, note: 0.22, wave: waveSquare, volume: 0.12},
	"monitor_2": {notes: []float64{196, 246.94, 293.66, 392}, note: 0.2, wave: waveSquare, volume: 0.12},
	"win":       {notes: []float64{523.25, 659.25, 783.99, 659.25, 1046.5, 0}, note: 0.3, wave: waveSquare, volume: 0.15},
	"lose":      {notes: []float64{392, 349.23, 311.13, 261.63, 0, 0}, note: 0.45, wave: waveSine, volume: 0.2},
}

// Context returns the process-wide audio context, creating it on first use.
func Context() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(SampleRate)
}

type clipKey struct {
	name  string
	pitch float64
}

// Library opens sound effects and music tracks. Synthesized clips are
// cached per name and pitch.
type Library struct {
	ctx *audio.Context
	dir string

	mu    sync.Mutex
	clips map[clipKey][]byte
}

func NewLibrary(ctx *audio.Context, dir string) *Library {
	return &Library{ctx: ctx, dir: dir, clips: make(map[clipKey][]byte)}
}

// Load opens name at pitch. It has the shape of system.TrackLoader.
func (l *Library) Load(name string, pitch float64) (component.Track, error) {
	if pitch <= 0 {
		pitch = 1
	}
	name = strings.TrimSpace(name)

	if l.dir != "" {
		p, err := l.loadWAV(name, pitch)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	pcm, err := l.clip(name, pitch)
	if err != nil {
		return nil, err
	}
	return l.ctx.NewPlayerFromBytes(pcm), nil
}

func (l *Library) loadWAV(name string, pitch float64) (*audio.Player, error) {
	path := filepath.Join(l.dir, name+".wav")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(l.ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode wav %q: %w", path, err)
	}
	if pitch == 1 {
		return l.ctx.NewPlayer(stream)
	}
	// Claiming a higher source rate plays the clip faster and higher.
	from := int(math.Round(float64(l.ctx.SampleRate()) * pitch))
	return l.ctx.NewPlayer(audio.Resample(stream, stream.Length(), from, l.ctx.SampleRate()))
}

func (l *Library) clip(name string, pitch float64) ([]byte, error) {
	t, ok := tones[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	key := clipKey{name: name, pitch: pitch}

	l.mu.Lock()
	defer l.mu.Unlock()
	if pcm, ok := l.clips[key]; ok {
		return pcm, nil
	}
	pcm := synthesize(t, pitch, l.ctx.SampleRate())
	l.clips[key] = pcm
	return pcm, nil
}

// synthesize renders t as 16-bit little-endian stereo PCM.
func synthesize(t tone, pitch float64, rate int) []byte {
	perNote := int(t.note * float64(rate))
	buf := make([]byte, 0, len(t.notes)*perNote*4)
	rng := rand.New(rand.NewPCG(1, uint64(len(t.notes))))

	for _, f := range t.notes {
		for i := 0; i < perNote; i++ {
			v := 0.0
			if f > 0 {
				ts := float64(i) / float64(rate)
				phase := pitch * (f*ts + t.sweep*ts*ts/2)
				v = sample(t.wave, phase, rng)
			}
			if t.decay {
				v *= 1 - float64(i)/float64(perNote)
			}
			s := uint16(int16(v * t.volume * math.MaxInt16))
			buf = binary.LittleEndian.AppendUint16(buf, s)
			buf = binary.LittleEndian.AppendUint16(buf, s)
		}
	}
	return buf
}

func sample(w waveform, phase float64, rng *rand.Rand) float64 {
	switch w {
	case waveSquare:
		if math.Mod(phase, 1) < 0.5 {
			return 1
		}
		return -1
	case waveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
