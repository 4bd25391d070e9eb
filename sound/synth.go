package sound

import (
	"encoding/binary"
	"math"
)

// Waveform selects the oscillator shape for synthesized tones.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

// String returns the waveform name.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	}
	return "unknown"
}

// Synthesize renders a tone as 16-bit little-endian stereo PCM at the
// given sample rate. A short attack and release ramp is applied so
// tones start and stop without clicks. Volume is clamped to [0, 1].
func Synthesize(sampleRate int, wave Waveform, freq, duration, volume float64) []byte {
	if sampleRate <= 0 || freq <= 0 || duration <= 0 {
		return nil
	}
	volume = min(max(volume, 0), 1)

	frames := int(duration * float64(sampleRate))
	attack := min(0.005, duration/4) * float64(sampleRate)
	release := min(0.02, duration/4) * float64(sampleRate)

	out := make([]byte, frames*4)
	for i := range frames {
		t := float64(i) / float64(sampleRate)
		phase := freq * t
		var v float64
		switch wave {
		case Square:
			if math.Mod(phase, 1) < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case Sawtooth:
			v = 2*math.Mod(phase, 1) - 1
		case Triangle:
			v = 2*math.Abs(2*math.Mod(phase, 1)-1) - 1
		default:
			v = math.Sin(2 * math.Pi * phase)
		}

		env := 1.0
		if fi := float64(i); fi < attack {
			env = fi / attack
		} else if rem := float64(frames) - fi; rem < release {
			env = rem / release
		}

		sample := int16(v * env * volume * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(sample))
	}
	return out
}

// resample stretches or compresses stereo PCM16 by the playback rate
// using linear interpolation. Rate 2 plays twice as fast (half the
// frames); rate 1 returns the input unchanged.
func resample(pcm []byte, rate float64) []byte {
	if rate == 1 || rate <= 0 || len(pcm) < 8 {
		return pcm
	}
	inFrames := len(pcm) / 4
	outFrames := int(float64(inFrames) / rate)
	if outFrames < 2 {
		return nil
	}

	out := make([]byte, outFrames*4)
	for i := range outFrames {
		pos := float64(i) * rate
		j := int(pos)
		frac := pos - float64(j)
		if j >= inFrames-1 {
			j = inFrames - 1
			frac = 0
		}
		k := min(j+1, inFrames-1)
		for ch := range 2 {
			a := int16(binary.LittleEndian.Uint16(pcm[j*4+ch*2:]))
			b := int16(binary.LittleEndian.Uint16(pcm[k*4+ch*2:]))
			v := float64(a) + (float64(b)-float64(a))*frac
			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(int16(v)))
		}
	}
	return out
}
