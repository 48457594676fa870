package player

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/google/uuid"

	"github.com/jscyril/freesound_cli/api"
	"github.com/jscyril/freesound_cli/internal/audio"
	fserrors "github.com/jscyril/freesound_cli/pkg/errors"
)

const seekPrompt = "stop or seek <0-9>/10:"

// Fetcher retrieves a preview asset by URL.
type Fetcher interface {
	FetchPreview(ctx context.Context, assetURL string) ([]byte, error)
}

// Console is the line-oriented surface the control loop drives. ReadLine
// blocks until a full line arrives and reports an interrupt signal as
// fserrors.ErrInterrupted.
type Console interface {
	ReadLine(prompt string) (string, error)
	Success(format string, args ...any)
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
}

// Player plays sound previews interactively. At most one playback
// invocation is active at a time; Play is fully synchronous and the
// audio device plus temporary file are released on every exit path.
type Player struct {
	fetcher Fetcher
	console Console
}

// New creates a preview player.
func New(fetcher Fetcher, console Console) *Player {
	return &Player{fetcher: fetcher, console: console}
}

// Play fetches and plays the HQ MP3 preview of a sound from the current
// result page, running the interactive seek/stop loop until playback
// ends. A nil return covers every outcome the user drove (completed,
// stopped, seeked past end, interrupted); errors mean the attempt failed.
func (p *Player) Play(ctx context.Context, soundID int64, page *api.ResultPage) error {
	id := strconv.FormatInt(soundID, 10)

	sound := page.Find(soundID)
	if sound == nil {
		return fserrors.NewSoundError("play", id, fserrors.ErrNotFound)
	}

	previewURL, ok := sound.PreviewURL()
	if !ok {
		return fserrors.NewSoundError("play", id, fserrors.ErrNoPreview)
	}

	data, err := p.fetcher.FetchPreview(ctx, previewURL)
	if err != nil {
		return fserrors.NewSoundError("play", id, err)
	}

	tmp := tempPath(previewURL)
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fserrors.NewSoundError("play", id, fmt.Errorf("%w: %v", fserrors.ErrWriteFailed, err))
	}
	defer p.removeTemp(tmp)

	buffer, format, err := audio.LoadBuffer(tmp)
	if err != nil {
		return fserrors.NewSoundError("play", id, err)
	}

	seconds := format.SampleRate.D(buffer.Len()).Seconds()
	p.console.Success("Playing: %s (%.2fs)", sound.Name, seconds)

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fserrors.NewSoundError("speaker_init", id, err)
	}

	outcome, loopErr := p.controlLoop(buffer)
	switch outcome {
	case OutcomeCompleted:
		p.console.Success("Playback finished.")
	case OutcomeInterrupted:
		p.console.Warnf("Playback interrupted by user (Ctrl+C).")
	case OutcomeErrored:
		return fserrors.NewSoundError("play", id, loopErr)
	}
	return nil
}

// controlLoop runs the interactive seek/stop loop while the output
// stream is active. The device is guaranteed halted when it returns.
func (p *Player) controlLoop(buffer *beep.Buffer) (Outcome, error) {
	total := buffer.Len()
	h := playFrom(buffer, 0)
	defer func() { h.halt() }()

	for {
		if !h.active() {
			return OutcomeCompleted, nil
		}

		line, err := p.console.ReadLine(seekPrompt)
		if errors.Is(err, fserrors.ErrInterrupted) {
			h.halt()
			return OutcomeInterrupted, nil
		}
		if err != nil {
			h.halt()
			return OutcomeErrored, err
		}

		input := strings.ToLower(strings.TrimSpace(line))
		switch {
		case input == "s" || input == "stop":
			h.halt()
			p.console.Warnf("Playback stopped.")
			return OutcomeStopped, nil

		case input == "":
			// Brief yield so an ended stream is noticed before re-prompting.
			time.Sleep(50 * time.Millisecond)

		case isDigit(input):
			h.halt()
			digit := int(input[0] - '0')
			start := SeekFrame(total, digit)
			if start >= total {
				p.console.Warnf("Seek position is at or beyond the end of the audio. Stopping.")
				return OutcomeSeekedPastEnd, nil
			}
			p.console.Warnf("Seeking to %d%%...", digit*10)
			h = playFrom(buffer, start)

		default:
			p.console.Errorf("Invalid input. Playback continues. Use 0-9, 's', or Enter.")
		}
	}
}

// SeekFrame maps a seek digit 0-9 onto a frame offset within a buffer of
// totalFrames frames.
func SeekFrame(totalFrames, digit int) int {
	return totalFrames * digit / 10
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

// playHandle tracks one asynchronous stream on the output device.
type playHandle struct {
	playing atomic.Bool
}

// playFrom starts asynchronous playback of the buffer at the given frame
// offset. The previous stream must already be halted; the device never
// carries two overlapping streams.
func playFrom(buffer *beep.Buffer, from int) *playHandle {
	h := &playHandle{}
	h.playing.Store(true)
	streamer := buffer.Streamer(from, buffer.Len())
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		h.playing.Store(false)
	})))
	return h
}

func (h *playHandle) active() bool {
	return h.playing.Load()
}

// halt stops the device synchronously. speaker.Clear drops the stream
// without running its completion callback, so the flag is cleared here.
func (h *playHandle) halt() {
	speaker.Clear()
	h.playing.Store(false)
}

// tempPath names a unique temporary file for the fetched asset, keeping
// the URL's extension so the decoder can dispatch on it.
func tempPath(previewURL string) string {
	ext := ".mp3"
	if u, err := url.Parse(previewURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); audio.IsSupported(e) {
			ext = e
		}
	}
	return filepath.Join(os.TempDir(), "freesound-preview-"+uuid.NewString()+ext)
}

// removeTemp deletes the temporary asset file. Failure to delete is a
// warning, never an error returned to the caller.
func (p *Player) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.console.Warnf("Warning: could not delete temporary file %s: %v", path, err)
	}
}
