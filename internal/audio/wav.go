package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DumpWAV writes captured PCM to a timestamped 16-bit mono WAV under
// dir and returns the file path. Used to keep utterances around for
// debugging transcription issues.
func DumpWAV(dir string, pcm []float32) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, time.Now().Format("20060102-150405")+".wav")

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, SampleRate, 16, 1, 1)
	ib := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: SampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(pcm)),
	}
	for i, s := range pcm {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		ib.Data[i] = int(s * 32767)
	}
	if err := enc.Write(ib); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// LoadWAV reads a WAV file and returns mono float32 samples at the
// pipeline rate, downmixing channels and resampling linearly when the
// source does not match.
func LoadWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	ib, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if ib.Format == nil || ib.Format.NumChannels == 0 {
		return nil, fmt.Errorf("wav %s: missing format", path)
	}

	scale := float32(1)
	if dec.BitDepth > 0 {
		scale = float32(int(1) << (dec.BitDepth - 1))
	}

	ch := ib.Format.NumChannels
	mono := make([]float32, 0, len(ib.Data)/ch)
	for i := 0; i+ch <= len(ib.Data); i += ch {
		var sum float32
		for c := 0; c < ch; c++ {
			sum += float32(ib.Data[i+c]) / scale
		}
		mono = append(mono, sum/float32(ch))
	}

	if ib.Format.SampleRate == SampleRate {
		return mono, nil
	}
	return resample(mono, ib.Format.SampleRate, SampleRate), nil
}

func resample(in []float32, from, to int) []float32 {
	if len(in) == 0 || from == to {
		return in
	}
	n := int(float64(len(in)) * float64(to) / float64(from))
	out := make([]float32, n)
	ratio := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = in[j]*(1-frac) + in[j+1]*frac
	}
	return out
}
