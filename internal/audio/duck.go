package audio

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var volumeRe = regexp.MustCompile(`(\d+)\s*%`)

type sinkInput struct {
	id     int
	volume int
	app    string
}

// Ducker lowers the volume of other applications' playback streams
// while the assistant listens or speaks, then restores them. Streams
// whose application.name matches one of selfNames are left alone.
type Ducker struct {
	mu        sync.Mutex
	active    bool
	selfNames []string
	restore   map[int]int
	floor     int
}

func NewDucker(selfNames []string, floor int) *Ducker {
	if floor < 0 {
		floor = 0
	}
	if floor > 150 {
		floor = 150
	}
	return &Ducker{
		selfNames: append([]string(nil), selfNames...),
		restore:   make(map[int]int),
		floor:     floor,
	}
}

// Duck fades every foreign stream down to volume*factor, not below the
// configured floor. Calling it while already ducked is a no-op.
func (d *Ducker) Duck(ctx context.Context, factor float64, fade time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active {
		return nil
	}

	streams, err := sinkInputs(ctx)
	if err != nil {
		return err
	}

	d.restore = make(map[int]int)
	var steps []fadeStep
	for _, s := range streams {
		if d.isSelf(s.app) {
			continue
		}
		target := int(math.Round(float64(s.volume) * factor))
		if target < d.floor {
			target = d.floor
		}
		d.restore[s.id] = s.volume
		steps = append(steps, fadeStep{id: s.id, from: s.volume, to: target})
	}

	if len(steps) > 0 {
		if err := runFade(ctx, steps, fade); err != nil {
			return err
		}
	}
	d.active = true
	return nil
}

// Unduck restores the volumes captured by the preceding Duck. Streams
// that appeared in between are not touched.
func (d *Ducker) Unduck(ctx context.Context, fade time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return nil
	}

	streams, err := sinkInputs(ctx)
	if err != nil {
		return err
	}

	var steps []fadeStep
	for _, s := range streams {
		orig, ok := d.restore[s.id]
		if !ok || d.isSelf(s.app) {
			continue
		}
		steps = append(steps, fadeStep{id: s.id, from: s.volume, to: orig})
	}

	if len(steps) > 0 {
		if err := runFade(ctx, steps, fade); err != nil {
			return err
		}
	}
	d.restore = make(map[int]int)
	d.active = false
	return nil
}

func (d *Ducker) isSelf(app string) bool {
	for _, name := range d.selfNames {
		if app == name {
			return true
		}
	}
	return false
}

type fadeStep struct {
	id   int
	from int
	to   int
}

func runFade(ctx context.Context, steps []fadeStep, fade time.Duration) error {
	if fade <= 0 {
		for _, s := range steps {
			if err := setVolume(ctx, s.id, s.to); err != nil {
				return err
			}
		}
		return nil
	}

	const tick = 10 * time.Millisecond
	n := int(fade / tick)
	if n < 1 {
		n = 1
	}

	for i := 0; i <= n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		frac := float64(i) / float64(n)
		for _, s := range steps {
			v := int(math.Round(float64(s.from) + float64(s.to-s.from)*frac))
			if err := setVolume(ctx, s.id, v); err != nil {
				return err
			}
		}
		if i < n {
			time.Sleep(fade / time.Duration(n))
		}
	}
	return nil
}

func sinkInputs(ctx context.Context) ([]sinkInput, error) {
	out, err := exec.CommandContext(ctx, "pactl", "list", "sink-inputs").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list sink-inputs: %w", err)
	}
	return parseSinkInputs(string(out)), nil
}

func parseSinkInputs(text string) []sinkInput {
	blocks := strings.Split(text, "Sink Input #")
	if len(blocks) <= 1 {
		return nil
	}

	var res []sinkInput
	for _, block := range blocks[1:] {
		nl := strings.IndexByte(block, '\n')
		if nl <= 0 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(block[:nl]))
		if err != nil {
			continue
		}

		s := sinkInput{id: id}
		for _, line := range strings.Split(block[nl+1:], "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "Volume:") && s.volume == 0 {
				if m := volumeRe.FindStringSubmatch(line); len(m) >= 2 {
					s.volume, _ = strconv.Atoi(m[1])
				}
			}
			if strings.HasPrefix(line, "application.name =") && s.app == "" {
				if i := strings.IndexByte(line, '"'); i >= 0 {
					rest := line[i+1:]
					if j := strings.IndexByte(rest, '"'); j >= 0 {
						s.app = rest[:j]
					}
				}
			}
		}
		if s.volume == 0 && s.app == "" {
			continue
		}
		res = append(res, s)
	}
	return res
}

func setVolume(ctx context.Context, id, percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 150 {
		percent = 150
	}
	return exec.CommandContext(ctx, "pactl",
		"set-sink-input-volume", strconv.Itoa(id), fmt.Sprintf("%d%%", percent)).Run()
}
