package main

import (
	"flag"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"skiff/pkg/browser"
	"skiff/pkg/web"
)

func main() {
	width := flag.Int("w", 1024, "viewport width in pixels")
	height := flag.Int("h", 700, "viewport height in pixels")
	legacyParser := flag.Bool("legacy-parser", false, "use the whole-document HTML parser")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := zap.NewNop()
	if *debug {
		logger, _ = zap.NewDevelopment()
	}

	a := app.New()
	w := a.NewWindow("skiff")
	w.Resize(fyne.NewSize(float32(*width), float32(*height)+80))

	view := browser.NewView(browser.Config{
		Loader:       browser.NewHTTPLoader(func(f func()) { fyne.Do(f) }),
		Logger:       logger,
		LegacyParser: *legacyParser,
		ViewportSize: image.Pt(*width, *height),
	})

	page := newPageWidget(view, *width, *height)
	status := widget.NewLabel("Enter a URL and press Enter")

	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://example.com")
	urlEntry.OnSubmitted = func(raw string) {
		view.Load(web.ParseAddress(raw))
	}

	view.OnLoadStart = func(addr *web.Address) {
		status.SetText("Loading " + addr.String() + "...")
		urlEntry.SetText(addr.String())
	}
	view.OnTitleChange = func(title string) {
		if title == "" {
			title = "skiff"
		} else {
			title = "skiff - " + title
		}
		w.SetTitle(title)
		status.SetText("")
	}
	view.OnLinkHover = func(target string) {
		status.SetText(target)
	}
	view.OnLinkClick = func(href, _ string, _ browser.KeyModifiers) {
		if doc := view.Document(); doc != nil && doc.Base != nil {
			view.Load(doc.Base.Resolve(href))
		}
	}
	view.OnLinkMiddleClick = func(href string) {
		// No tab support; a middle click navigates like a primary one.
		if doc := view.Document(); doc != nil && doc.Base != nil {
			view.Load(doc.Base.Resolve(href))
		}
	}
	view.OnAddressDrop = func(addr *web.Address) {
		view.Load(addr)
	}
	view.OnRepaintRequested = page.refresh

	topBar := container.NewBorder(nil, nil, nil, nil, urlEntry)
	w.SetContent(container.NewBorder(topBar, status, nil, nil, page))

	if flag.NArg() > 0 {
		view.Load(web.ParseAddress(flag.Arg(0)))
	} else {
		w.Canvas().Focus(urlEntry)
	}

	w.ShowAndRun()
}
