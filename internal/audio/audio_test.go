package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
)

func countSamples(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestSquareWaveLength(t *testing.T) {
	want := sampleRate.N(50 * time.Millisecond)
	got := countSamples(squareWave(880, 50*time.Millisecond))
	if got != want {
		t.Errorf("expected %d samples, got %d", want, got)
	}
}

func TestSquareWaveAmplitude(t *testing.T) {
	buf := make([][2]float64, 100)
	n, _ := squareWave(440, 10*time.Millisecond).Stream(buf)
	for i := 0; i < n; i++ {
		v := buf[i][0]
		if v != volume && v != -volume {
			t.Fatalf("sample %d: expected +/-%v, got %v", i, volume, v)
		}
		if buf[i][1] != v {
			t.Fatalf("sample %d: expected both channels equal", i)
		}
	}
}

func TestMelodyIncludesRests(t *testing.T) {
	notes := []note{
		{660, 100 * time.Millisecond},
		{0, 50 * time.Millisecond},
		{330, 150 * time.Millisecond},
	}
	want := 0
	for _, n := range notes {
		want += sampleRate.N(n.duration)
	}

	got := countSamples(melody(notes...))
	if got != want {
		t.Errorf("expected %d samples, got %d", want, got)
	}
}

func TestPlayWithoutInit(t *testing.T) {
	if Enabled() {
		t.Skip("speaker already initialized")
	}
	// none of these may block or panic when the speaker is off
	PlayPaddleHit()
	PlayWallBounce()
	PlayScore()
	PlayVictory()
}
