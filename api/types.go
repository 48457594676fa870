package api

import "time"

// PreviewHQMP3 is the preview-quality key used for both playback and
// download; Freesound serves it for every sound that has previews at all.
const PreviewHQMP3 = "preview-hq-mp3"

// Sound is one remote sound record as returned by the search endpoint.
// Immutable once fetched; the session loop owns it for the lifetime of
// the current result page.
type Sound struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Username    string            `json:"username"`
	Created     time.Time         `json:"created"`
	Type        string            `json:"type"`
	Duration    float64           `json:"duration"`
	Tags        []string          `json:"tags"`
	Description string            `json:"description"`
	License     string            `json:"license"`
	Previews    map[string]string `json:"previews"`
}

// PreviewURL resolves the high-quality MP3 preview for this sound.
func (s *Sound) PreviewURL() (string, bool) {
	url, ok := s.Previews[PreviewHQMP3]
	return url, ok && url != ""
}

// ResultPage is one fixed-size slice of the remote result set. It is
// replaced wholesale on every navigation action, never patched.
type ResultPage struct {
	Sounds     []Sound
	Page       int
	TotalPages int
	PageSize   int
}

// Find returns the sound with the given ID, or nil if it is not on this page.
func (p *ResultPage) Find(id int64) *Sound {
	for i := range p.Sounds {
		if p.Sounds[i].ID == id {
			return &p.Sounds[i]
		}
	}
	return nil
}

// Len returns the number of sounds on this page.
func (p *ResultPage) Len() int {
	return len(p.Sounds)
}
