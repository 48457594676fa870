package session

import (
	"context"
	"strings"

	"github.com/jscyril/freesound_cli/api"
	"github.com/jscyril/freesound_cli/internal/freesound"
	"github.com/jscyril/freesound_cli/internal/ui"
)

const defaultQuery = "birdsong"

// Searcher fetches one page of search results.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*api.ResultPage, error)
}

// Player plays a sound preview interactively.
type Player interface {
	Play(ctx context.Context, soundID int64, page *api.ResultPage) error
}

// Downloader saves a sound's preview asset to disk.
type Downloader interface {
	Download(ctx context.Context, soundID int64, page *api.ResultPage) (freesound.DownloadResult, error)
}

// Session owns the interactive REPL: the current query, page number and
// result page. Exactly one session runs per process.
type Session struct {
	console    *ui.Console
	searcher   Searcher
	player     Player
	downloader Downloader
}

// New creates a session over the given collaborators.
func New(console *ui.Console, searcher Searcher, player Player, downloader Downloader) *Session {
	return &Session{
		console:    console,
		searcher:   searcher,
		player:     player,
		downloader: downloader,
	}
}

// Run drives the query prompt and, per query, the result browser. A nil
// return is a clean exit: quit, end of input, or a declined retry after
// a search error.
func (s *Session) Run(ctx context.Context) error {
	for {
		line, err := s.console.ReadLine(`Enter query (default "birdsong"):`)
		if err != nil {
			return nil
		}
		query := strings.TrimSpace(line)
		if query == "" {
			query = defaultQuery
		}
		s.console.Success("Searching for '%s'...", query)

		page, err := s.searcher.Search(ctx, query, 1)
		if err != nil {
			s.console.Errorf("An error occurred while searching. Please check your connection or API key.")
			retry, rerr := s.console.ReadLine("Try searching again? (y/n):")
			if rerr != nil {
				return nil
			}
			if strings.TrimSpace(strings.ToLower(retry)) == "n" {
				s.console.Success("Exiting due to search error. Goodbye!")
				return nil
			}
			continue
		}

		if page.Len() == 0 {
			s.console.Errorf("No results found for '%s'. Try a different search term.", query)
			continue
		}

		quit, err := s.browse(ctx, query, page)
		if err != nil {
			return err
		}
		if quit {
			s.console.Success("Exiting FreeSound CLI. Goodbye!")
			return nil
		}
		s.console.Success("Restarting search...")
	}
}

// browse runs the command loop over one query's result set. It returns
// true to quit the whole session, false to restart with a new query.
func (s *Session) browse(ctx context.Context, query string, page *api.ResultPage) (bool, error) {
	current := page.Page
	reprint := true

	for {
		if reprint {
			s.console.Print(ui.FormatTable(page))
		}

		cmd, err := s.console.Command(page.Len(), page.TotalPages)
		if err != nil {
			// Interrupt or end of input at the command prompt quits cleanly.
			return true, nil
		}
		reprint = false

		switch cmd.Kind {
		case ui.CmdQuit:
			return true, nil

		case ui.CmdRestart:
			return false, nil

		case ui.CmdPrev:
			if current <= 1 {
				s.console.Errorf("Already on the first page.")
				continue
			}
			next, err := s.searcher.Search(ctx, query, current-1)
			if err != nil {
				s.console.Errorf("Error fetching previous page. Staying on current page.")
				continue
			}
			current--
			page = next
			reprint = true

		case ui.CmdNext:
			if current >= page.TotalPages {
				s.console.Errorf("Already on the last page.")
				continue
			}
			next, err := s.searcher.Search(ctx, query, current+1)
			if err != nil {
				s.console.Errorf("Error fetching next page. Staying on current page.")
				continue
			}
			current++
			page = next
			reprint = true

		case ui.CmdGo:
			next, err := s.searcher.Search(ctx, query, cmd.Page)
			if err != nil {
				s.console.Errorf("Error fetching page %d. Staying on current page.", cmd.Page)
				continue
			}
			current = cmd.Page
			page = next
			reprint = true

		case ui.CmdClear:
			s.console.Clear()
			reprint = true

		case ui.CmdPlay:
			sound := &page.Sounds[cmd.Index]
			if err := s.player.Play(ctx, sound.ID, page); err != nil {
				s.console.Errorf("%v", err)
			}

		case ui.CmdInspect:
			s.console.Print(ui.FormatPanel(&page.Sounds[cmd.Index]))
			s.console.Print("")

		case ui.CmdDownload:
			sound := &page.Sounds[cmd.Index]
			s.console.Success("Attempting to download sound #%d: '%s'...", cmd.Index+1, sound.Name)
			res, err := s.downloader.Download(ctx, sound.ID, page)
			if err != nil {
				s.console.Errorf("%v", err)
				continue
			}
			s.console.Success("Downloaded '%s'", res.Filename)
			if res.EmbeddedTitle != "" {
				s.console.Print("Embedded title: " + res.EmbeddedTitle)
			}
		}
	}
}
