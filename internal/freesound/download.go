package freesound

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"github.com/jscyril/freesound_cli/api"
	fserrors "github.com/jscyril/freesound_cli/pkg/errors"
)

const (
	downloadChunkSize = 8192
	maxFilenameRunes  = 200
)

// DownloadResult describes a completed download.
type DownloadResult struct {
	Filename      string // base name of the written file
	Path          string // full path on disk
	EmbeddedTitle string // title tag found in the saved file, if any
}

// Download fetches the HQ MP3 preview of a sound from the current result
// page and writes it to the download directory. A failure mid-write
// leaves the truncated file in place.
func (c *Client) Download(ctx context.Context, soundID int64, page *api.ResultPage) (DownloadResult, error) {
	id := strconv.FormatInt(soundID, 10)

	if c.cfg.APIKey == "" {
		return DownloadResult{}, fserrors.NewSoundError("download", id, fserrors.ErrUnconfigured)
	}

	sound := page.Find(soundID)
	if sound == nil {
		return DownloadResult{}, fserrors.NewSoundError("download", id, fserrors.ErrNotFound)
	}

	assetURL, ok := sound.PreviewURL()
	if !ok {
		return DownloadResult{}, fserrors.NewSoundError("download", id, fserrors.ErrNoAsset)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.DownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return DownloadResult{}, fserrors.NewSoundError("download", id, fmt.Errorf("%w: %v", fserrors.ErrTransport, err))
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return DownloadResult{}, fserrors.NewSoundError("download", id, fmt.Errorf("%w: %v", fserrors.ErrTransport, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return DownloadResult{}, fserrors.NewSoundError("download", id, fmt.Errorf("%w: unexpected status %s", fserrors.ErrTransport, resp.Status))
	}

	filename := SanitizeFilename(sound.Name) + ".mp3"
	path := filepath.Join(c.cfg.DownloadDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return DownloadResult{}, fserrors.NewSoundError("download", id, fmt.Errorf("%w: %v", fserrors.ErrWriteFailed, err))
	}

	buf := make([]byte, downloadChunkSize)
	_, copyErr := io.CopyBuffer(f, resp.Body, buf)
	closeErr := f.Close()
	if copyErr != nil {
		return DownloadResult{}, fserrors.NewSoundError("download", id, fmt.Errorf("%w: %v", fserrors.ErrWriteFailed, copyErr))
	}
	if closeErr != nil {
		return DownloadResult{}, fserrors.NewSoundError("download", id, fmt.Errorf("%w: %v", fserrors.ErrWriteFailed, closeErr))
	}

	return DownloadResult{
		Filename:      filename,
		Path:          path,
		EmbeddedTitle: probeTitle(path),
	}, nil
}

// SanitizeFilename turns a sound's display name into a filesystem-safe
// base name: path separators replaced, length capped.
func SanitizeFilename(name string) string {
	s := strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	runes := []rune(s)
	if len(runes) > maxFilenameRunes {
		s = string(runes[:maxFilenameRunes]) + "..."
	}
	return s
}

// probeTitle reads the title tag embedded in the saved file. Best-effort;
// previews usually carry no tags at all.
func probeTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}
	return meta.Title()
}
