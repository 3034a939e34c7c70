package audio

import (
	"math"
	"testing"
)

func TestDumpAndLoadWAV(t *testing.T) {
	// 100ms of a 440 Hz tone.
	n := SampleRate / 10
	pcm := make([]float32, n)
	for i := range pcm {
		pcm[i] = 0.5 * float32(math.Sin(2*math.Pi*440*float64(i)/SampleRate))
	}

	path, err := DumpWAV(t.TempDir(), pcm)
	if err != nil {
		t.Fatalf("DumpWAV: %v", err)
	}

	got, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}
	if len(got) != n {
		t.Fatalf("sample count = %d, want %d", len(got), n)
	}
	for i := 0; i < n; i += 100 {
		if math.Abs(float64(got[i]-pcm[i])) > 0.001 {
			t.Fatalf("sample %d = %f, want about %f", i, got[i], pcm[i])
		}
	}
}

func TestResample(t *testing.T) {
	in := make([]float32, 4410) // 100ms at 44.1 kHz
	out := resample(in, 44100, SampleRate)
	if len(out) != 1600 {
		t.Fatalf("resampled length = %d, want 1600", len(out))
	}
}

func TestResampleIdentity(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	out := resample(in, SampleRate, SampleRate)
	if len(out) != len(in) {
		t.Fatalf("length changed: %d", len(out))
	}
}

func TestFrameRMS(t *testing.T) {
	silent := make([]float32, 320)
	if rms := frameRMS(silent); rms != 0 {
		t.Fatalf("silence rms = %f", rms)
	}
	loud := make([]float32, 320)
	for i := range loud {
		loud[i] = 0.5
	}
	if rms := frameRMS(loud); math.Abs(rms-0.5) > 1e-6 {
		t.Fatalf("loud rms = %f, want 0.5", rms)
	}
}
