package ui

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// CommandKind enumerates the interactive command vocabulary.
type CommandKind int

const (
	CmdInvalid CommandKind = iota
	CmdQuit
	CmdRestart
	CmdPrev
	CmdNext
	CmdGo
	CmdPlay
	CmdInspect
	CmdDownload
	CmdClear
)

// Command is one fully-resolved user command. Index is a 0-based
// position within the current result page (Play/Inspect/Download); Page
// is a 1-based page number (Go).
type Command struct {
	Kind  CommandKind
	Index int
	Page  int
}

// Command prompts until the user enters a valid command and returns it
// resolved: random targets drawn, indices and pages validated against
// the current page size and page count. Out-of-range and unparsable
// input re-prompts here and never reaches the session loop.
func (c *Console) Command(maxIndex, totalPages int) (Command, error) {
	c.Success("Commands: play #/r, inspect #, download #, prev, next, go #/r, restart, quit, clear (r for random)")

	for {
		line, err := c.ReadLine("Enter command:")
		if err != nil {
			return Command{}, err
		}

		parts := strings.Fields(strings.ToLower(line))
		if len(parts) == 0 {
			c.Errorf("Please enter a command")
			continue
		}

		kind := parseKeyword(parts[0])
		switch kind {
		case CmdQuit, CmdRestart, CmdPrev, CmdNext, CmdClear:
			return Command{Kind: kind}, nil

		case CmdGo:
			arg, err := c.argument(parts, "Enter page number or 'r' for random:")
			if err != nil {
				return Command{}, err
			}
			page, perr := resolvePage(arg, totalPages)
			if perr != nil {
				c.Errorf("%v", perr)
				continue
			}
			return Command{Kind: CmdGo, Page: page}, nil

		case CmdPlay, CmdInspect, CmdDownload:
			arg, err := c.argument(parts, fmt.Sprintf("Enter sound number (1-%d) or 'r' for random:", maxIndex))
			if err != nil {
				return Command{}, err
			}
			index, ierr := resolveIndex(arg, maxIndex)
			if ierr != nil {
				c.Errorf("%v", ierr)
				continue
			}
			return Command{Kind: kind, Index: index}, nil

		default:
			c.Errorf("Invalid command")
		}
	}
}

// argument returns the command's argument, issuing a secondary prompt
// when it was omitted.
func (c *Console) argument(parts []string, prompt string) (string, error) {
	if len(parts) > 1 {
		return parts[1], nil
	}
	line, err := c.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// parseKeyword maps a bare command word onto its kind. A lone "r" means
// restart; "r" only means random in argument position.
func parseKeyword(word string) CommandKind {
	switch word {
	case "q", "quit":
		return CmdQuit
	case "r", "restart":
		return CmdRestart
	case "prev", "<":
		return CmdPrev
	case "next", ">":
		return CmdNext
	case "g", "go":
		return CmdGo
	case "p", "play":
		return CmdPlay
	case "i", "inspect":
		return CmdInspect
	case "d", "download":
		return CmdDownload
	case "c", "clear":
		return CmdClear
	default:
		return CmdInvalid
	}
}

// resolveIndex turns a raw argument into a 0-based index into the
// current page, drawing uniformly when the argument is "r".
func resolveIndex(arg string, maxIndex int) (int, error) {
	if arg == "r" {
		if maxIndex <= 0 {
			return 0, errors.New("no sounds available on this page")
		}
		return rand.Intn(maxIndex), nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New("please enter a valid number or 'r'")
	}
	if n < 1 || n > maxIndex {
		return 0, fmt.Errorf("please enter a number between 1 and %d", maxIndex)
	}
	return n - 1, nil
}

// resolvePage turns a raw argument into a 1-based page number, drawing
// uniformly when the argument is "r".
func resolvePage(arg string, totalPages int) (int, error) {
	if arg == "r" {
		if totalPages <= 0 {
			return 0, errors.New("no pages available to go to a random page")
		}
		return 1 + rand.Intn(totalPages), nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New("please enter a valid number or 'r'")
	}
	if n < 1 || n > totalPages {
		return 0, fmt.Errorf("please enter a page number between 1 and %d", totalPages)
	}
	return n, nil
}
