package preview

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/ako-backing-tracks/scoreengrave/score"
	"github.com/ako-backing-tracks/scoreengrave/session"
)

// RunOrFallback launches the interactive bubbletea preview if stdout is a
// TTY, otherwise dumps a plain-text page/system summary to w.
func RunOrFallback(w io.Writer, documentName string, doc *score.Document) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return runPlainText(w, doc)
	}
	return runTUI(documentName, doc)
}

func runTUI(documentName string, doc *score.Document) error {
	controller := session.NewController(doc)
	controller.Start()
	defer controller.Stop()

	model := NewModel(documentName, controller)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// runPlainText drives the controller to completion (or a hard failure) and
// prints one line per page/system, for non-interactive output (pipes,
// CI logs).
func runPlainText(w io.Writer, doc *score.Document) error {
	controller := session.NewController(doc)
	controller.Start()
	defer controller.Stop()

	for !controller.Finished() {
		time.Sleep(5 * time.Millisecond)
	}
	if err := controller.Err(); err != nil {
		return err
	}

	for i := 0; i < controller.PageCount(); i++ {
		page, _ := controller.Page(i)
		fmt.Fprintf(w, "page %d: %.0fx%.0f, %d systems\n", i+1, page.Bounds.Size.W, page.Bounds.Size.H, len(page.Children))
		for j, sys := range page.Children {
			fmt.Fprintf(w, "  system %d: y=%.0f shapes=%d\n", j, sys.Bounds.Origin.Y, len(sys.AllShapes()))
		}
	}
	return nil
}
