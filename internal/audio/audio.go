package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.2
)

var (
	initialized bool
)

// Init initializes the audio system
func Init() error {
	if initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/30))
	if err != nil {
		return err
	}

	initialized = true
	return nil
}

// Close shuts down the audio system
func Close() {
	if initialized {
		speaker.Close()
		initialized = false
	}
}

// Enabled reports whether sounds will actually be played
func Enabled() bool {
	return initialized
}

// squareWave generates a square wave tone (more retro/8-bit feel)
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := volume
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

type note struct {
	freq     float64 // 0 is a rest
	duration time.Duration
}

// melody chains notes into one streamer so the speaker plays them in order
func melody(notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(sampleRate.N(n.duration)))
			continue
		}
		parts = append(parts, squareWave(n.freq, n.duration))
	}
	return beep.Seq(parts...)
}

func play(s beep.Streamer) {
	if !initialized {
		return
	}
	speaker.Play(s)
}

// PlayPaddleHit plays the sound for ball hitting a paddle
func PlayPaddleHit() {
	play(squareWave(880, 50*time.Millisecond))
}

// PlayWallBounce plays the sound for ball hitting top/bottom wall
func PlayWallBounce() {
	play(squareWave(440, 30*time.Millisecond))
}

// PlayScore plays a descending tone when a side scores
func PlayScore() {
	play(melody(
		note{660, 100 * time.Millisecond},
		note{440, 100 * time.Millisecond},
		note{330, 150 * time.Millisecond},
	))
}

// PlayVictory plays a short fanfare for the winner
func PlayVictory() {
	play(melody(
		note{523, 120 * time.Millisecond},
		note{659, 120 * time.Millisecond},
		note{784, 120 * time.Millisecond},
		note{0, 60 * time.Millisecond},
		note{1047, 300 * time.Millisecond},
	))
}
