// Package audio captures microphone input for the voice pipeline and
// keeps other playback out of the way while the assistant listens.
package audio

import (
	"errors"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// Whisper expects mono 16 kHz input.
	SampleRate = 16000
	frameSize  = 320 // 20ms
)

// Recorder reads from the default capture device. Init must be called
// once before recording and Close once when done.
type Recorder struct {
	silenceRMS    float64
	silenceWindow time.Duration
	maxUtterance  time.Duration
}

func NewRecorder(silenceRMS float64, silenceWindow, maxUtterance time.Duration) *Recorder {
	if silenceRMS <= 0 {
		silenceRMS = 0.015
	}
	if silenceWindow <= 0 {
		silenceWindow = 600 * time.Millisecond
	}
	if maxUtterance <= 0 {
		maxUtterance = 15 * time.Second
	}
	return &Recorder{
		silenceRMS:    silenceRMS,
		silenceWindow: silenceWindow,
		maxUtterance:  maxUtterance,
	}
}

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// RecordUtterance captures until the speaker pauses: it waits for
// speech to start, then stops once the input stays below the RMS
// threshold for the silence window or the utterance limit is hit.
func (r *Recorder) RecordUtterance() ([]float32, error) {
	buf := make([]float32, frameSize)
	out := make([]float32, 0, SampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	const frameDur = 20 * time.Millisecond

	var (
		speaking      bool
		silenceFrames int
	)
	maxFrames := int(r.maxUtterance / frameDur)

	for i := 0; i < maxFrames; i++ {
		if err := stream.Read(); err != nil {
			return nil, err
		}

		if frameRMS(buf) > r.silenceRMS {
			speaking = true
			silenceFrames = 0
			out = append(out, buf...)
			continue
		}
		if speaking {
			silenceFrames++
			if time.Duration(silenceFrames)*frameDur >= r.silenceWindow {
				break
			}
			out = append(out, buf...)
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no speech detected")
	}
	return out, nil
}

func frameRMS(f []float32) float64 {
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
