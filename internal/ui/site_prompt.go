package ui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl-C.
var ErrAborted = errors.New("prompt aborted")

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// filterSites returns the sites starting with prefix, ignoring case.
func filterSites(sites []string, prefix string) []string {
	if prefix == "" {
		return sites
	}

	var matches []string
	lowerPrefix := strings.ToLower(prefix)
	for _, s := range sites {
		if strings.HasPrefix(strings.ToLower(s), lowerPrefix) {
			matches = append(matches, s)
		}
	}
	return matches
}

// resolveSiteAnswer maps a prompt answer to a site: an exact name, a 1-based index
// into sites, or a unique prefix.
func resolveSiteAnswer(sites []string, answer string) (string, bool) {
	answer = strings.TrimSpace(answer)
	for _, s := range sites {
		if s == answer {
			return s, true
		}
	}
	if idx, err := strconv.Atoi(answer); err == nil {
		if idx >= 1 && idx <= len(sites) {
			return sites[idx-1], true
		}
		return "", false
	}
	if matches := filterSites(sites, answer); len(matches) == 1 && answer != "" {
		return matches[0], true
	}
	return "", false
}

// PromptSite lets the user pick one of sites, with tab completion on site names.
func PromptSite(sites []string) (string, error) {
	if len(sites) == 0 {
		return "", errors.New("no MSDeploy sites in publish settings")
	}

	fmt.Println("Sites:")
	for i, s := range sites {
		fmt.Printf("  [%d] %s\n", i+1, s)
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		return filterSites(sites, input)
	})

	for {
		answer, err := line.Prompt("site> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				return "", ErrAborted
			}
			return "", err
		}
		if site, ok := resolveSiteAnswer(sites, answer); ok {
			return site, nil
		}
		fmt.Printf("Unknown site %q. Enter a name or a number between 1 and %d.\n", answer, len(sites))
	}
}
