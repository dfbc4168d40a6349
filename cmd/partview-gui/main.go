package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/partview/pkg/config"
	"github.com/philipparndt/partview/pkg/fyneview"
	"github.com/philipparndt/partview/pkg/stl"
	"github.com/philipparndt/partview/pkg/viewer"
)

func main() {
	a := app.New()
	w := a.NewWindow("partview")

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	view := fyneview.New()
	status := widget.NewLabel("No model loaded")

	// The controller handles fetching, decoding and file watching; the
	// widget renders whatever it last loaded. State callbacks arrive on
	// loader goroutines, so the UI updates go through fyne.Do.
	var ctrl *viewer.Controller
	ctrl = viewer.New(
		viewer.WithSettings(config.Static(settings)),
		viewer.WithStateHandler(func(st viewer.State) {
			model := ctrl.Geometry()
			fyne.Do(func() {
				view.SetModel(model)
				status.SetText(statusText(st, model))
			})
		}),
	)

	sourceEntry := widget.NewEntry()
	sourceEntry.SetPlaceHolder("https://example.com/model.stl or /path/to/model.stl")
	sourceEntry.OnSubmitted = func(src string) {
		ctrl.SetSource(src)
	}

	openButton := widget.NewButton("Open File", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if reader == nil {
				return
			}
			defer reader.Close()

			path := reader.URI().Path()
			sourceEntry.SetText(path)
			ctrl.SetSource(path)
		}, w)
	})

	loadButton := widget.NewButton("Load", func() {
		ctrl.SetSource(sourceEntry.Text)
	})

	topBar := container.NewBorder(nil, nil, openButton, loadButton, sourceEntry)
	w.SetContent(container.NewBorder(topBar, status, nil, nil, view))

	if len(os.Args) > 1 {
		sourceEntry.SetText(os.Args[1])
		ctrl.SetSource(os.Args[1])
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()

	ctrl.Close()
}

func statusText(st viewer.State, model *stl.Model) string {
	switch st.Phase {
	case viewer.PhaseLoading:
		return "Loading " + st.URL
	case viewer.PhaseLoaded:
		if model != nil {
			return fmt.Sprintf("Loaded %s (%d triangles)", st.URL, model.TriangleCount())
		}
		return "Loaded " + st.URL
	case viewer.PhaseError:
		return fmt.Sprintf("Failed to load %s: %s", st.URL, st.Message)
	default:
		return "No model loaded"
	}
}
