package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/charmbracelet/lipgloss"

	"github.com/whyrusleeping/polysynth/internal/console"
	"github.com/whyrusleeping/polysynth/internal/meter"
	"github.com/whyrusleeping/polysynth/internal/session"
)

var descriptions = map[string]string{
	"gain":    "output level, 0..1",
	"attack":  "attack time",
	"decay":   "decay time",
	"sustain": "sustain level, 0..1",
	"release": "release time",
	"on":      "start a note",
	"off":     "stop a note",
	"panic":   "release every voice",
	"status":  "show voices, parameters and meters",
	"quit":    "leave",
}

var suggestions = func() []prompt.Suggest {
	var out []prompt.Suggest
	for _, w := range console.Words {
		out = append(out, prompt.Suggest{Text: w, Description: descriptions[w]})
	}
	return out
}()

func completer(d prompt.Document) []prompt.Suggest {
	if strings.Contains(d.TextBeforeCursor(), " ") {
		return nil
	}
	return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
}

// runConsole reads commands until quit or until ctx is done. Commands run
// on the session loop, not here.
func runConsole(ctx context.Context, quit context.CancelFunc, sess *session.Session) {
	for {
		line := prompt.Input("> ", completer)
		if ctx.Err() != nil {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "help" {
			for _, h := range console.Help {
				fmt.Println(h)
			}
			continue
		}

		cmd, err := console.Parse(line)
		if err != nil {
			if errors.Is(err, console.ErrUnknownCommand) {
				err = fmt.Errorf("%w (try help)", err)
			}
			fmt.Println("ERROR: ", err)
			continue
		}

		switch cmd.Action {
		case console.ActionQuit:
			quit()
			return
		case console.ActionStatus:
			sess.Post(ctx, func() {
				printStatus(os.Stdout, sess.Status())
			})
		case console.ActionDispatch:
			sess.PostEvent(ctx, cmd.Event)
		}
	}
}

var (
	labelStyle = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("#666666"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
)

func printStatus(w io.Writer, st session.Status) {
	row := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(value))
	}

	if !st.Ready {
		fmt.Fprintln(w, warnStyle.Render("audio engine not ready"))
	}
	row("voices", fmt.Sprintf("%d/%d", st.Active, st.Voices))
	for _, p := range st.Params {
		row(string(p.Param), p.Display)
	}
	row("meter", fmt.Sprintf("%s  %s", formatDB(st.Meters[0]), formatDB(st.Meters[1])))
	if st.Dropped > 0 {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("%d engine events dropped", st.Dropped)))
	}
}

func formatDB(db float64) string {
	if db <= meter.DBMin {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}
