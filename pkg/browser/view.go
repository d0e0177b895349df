package browser

import (
	"fmt"
	gohtml "html"
	"image"

	"go.uber.org/zap"

	"skiff/pkg/content"
	"skiff/pkg/html"
	"skiff/pkg/images"
	"skiff/pkg/js"
	"skiff/pkg/layout"
	"skiff/pkg/render"
	"skiff/pkg/web"
)

// maxRedirects bounds redirect chasing; past it the load terminates on a
// "Redirect loop" error page.
const maxRedirects = 8

// Config wires a View's collaborators. Loader is required; everything
// else has a usable default.
type Config struct {
	Loader Loader
	Logger *zap.Logger

	// LegacyParser selects the whole-document HTML parser instead of
	// the incremental tokenizing one. Document structure is identical
	// either way.
	LegacyParser bool

	// ViewportSize is the widget inner size in pixels.
	ViewportSize image.Point
}

// View is the page-view controller. It owns the current document and its
// layout tree, executes the load sequence, and runs the interactive layer.
// All state is confined to one logical thread: the loader delivers
// completions there and embedders call every method from there.
type View struct {
	loader   Loader
	log      *zap.Logger
	builder  *content.Builder
	engine   *layout.Engine
	jsEngine *js.Engine

	doc        *html.Document
	layoutRoot *layout.Box

	viewportSize image.Point
	contentSize  image.Point
	vScroll      ScrollBar
	hScroll      ScrollBar

	// generation stamps each load; completions carrying a stale stamp
	// are discarded so an old request can never overwrite a newer
	// document.
	generation uint64

	inMouseSelection bool

	// Lifecycle notifications. All optional.
	OnLoadStart              func(addr *web.Address)
	OnTitleChange            func(title string)
	OnFaviconChange          func(icon image.Image)
	OnLinkHover              func(target string)
	OnLinkClick              func(href, targetWindow string, modifiers KeyModifiers)
	OnLinkContextMenuRequest func(href string, screenPos image.Point)
	OnLinkMiddleClick        func(href string)
	OnAddressDrop            func(addr *web.Address)
	OnSetDocument            func(doc *html.Document)
	OnRepaintRequested       func()
	OnCursorChange           func(cursor Cursor)
	OnTooltipShow            func(text string, screenPos image.Point)
	OnTooltipHide            func()
}

// NewView creates a View with the given configuration.
func NewView(cfg Config) *View {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var parser html.Parser = html.StreamParser{}
	if cfg.LegacyParser {
		parser = html.TreeParser{}
	}
	size := cfg.ViewportSize
	if size.X == 0 || size.Y == 0 {
		size = image.Pt(800, 600)
	}
	return &View{
		loader:       cfg.Loader,
		log:          logger,
		builder:      content.NewBuilder(parser),
		engine:       layout.NewEngine(),
		jsEngine:     js.New(),
		viewportSize: size,
	}
}

// Document returns the currently installed document, or nil.
func (v *View) Document() *html.Document { return v.doc }

// LayoutRoot returns the current layout tree root, or nil.
func (v *View) LayoutRoot() *layout.Box { return v.layoutRoot }

// Load starts loading the given address. Invalid addresses install an
// error document without issuing any fetch.
func (v *View) Load(addr *web.Address) {
	v.load(addr, 0)
}

func (v *View) load(addr *web.Address, redirectDepth int) {
	v.generation++
	gen := v.generation
	v.log.Debug("load", zap.String("url", addr.String()), zap.Uint64("generation", gen))

	if !addr.Valid() {
		v.loadErrorPage(gen, addr, "Invalid URL")
		return
	}

	v.setCursor(CursorDefault)
	if v.OnLoadStart != nil {
		v.OnLoadStart(addr)
	}

	// Optimistic: back to the top regardless of how the load ends.
	v.scrollToTop()

	v.loader.Load(addr,
		func(data []byte, headers *web.Headers) {
			if gen != v.generation {
				v.log.Debug("discarding stale load completion",
					zap.String("url", addr.String()), zap.Uint64("generation", gen))
				return
			}
			if location, ok := headers.Get("Location"); ok {
				if redirectDepth >= maxRedirects {
					v.loadErrorPage(gen, addr, "Redirect loop")
					return
				}
				v.load(addr.Resolve(location), redirectDepth+1)
				return
			}
			v.installPayload(gen, addr, data, headers)
		},
		func(message string) {
			if gen != v.generation {
				return
			}
			v.loadErrorPage(gen, addr, message)
		})

	if !addr.IsLocal() {
		v.loadFavicon(addr.FaviconAddress())
	}
}

// installPayload classifies a successful response, builds its document,
// and installs it.
func (v *View) installPayload(gen uint64, addr *web.Address, data []byte, headers *web.Headers) {
	if len(data) == 0 {
		v.loadErrorPage(gen, addr, "No data")
		return
	}

	mimeType, encoding := content.Classify(headers, addr)
	v.log.Debug("classified content",
		zap.String("mime", mimeType), zap.String("encoding", encoding))

	doc, err := v.builder.Build(data, addr, mimeType, encoding)
	if err != nil {
		if content.IsRecoverable(err) {
			v.loadErrorPage(gen, addr, err.Error())
			return
		}
		// Builder dispatch is expected to be exhaustive for every
		// classification the classifier can produce. Abort the
		// operation without touching displayed state.
		v.log.Error("document builder contract violated",
			zap.String("mime", mimeType), zap.Error(err))
		return
	}

	v.SetDocument(doc)

	if fragment := addr.Fragment(); fragment != "" {
		v.ScrollToAnchor(fragment)
	}
	if v.OnTitleChange != nil {
		v.OnTitleChange(doc.Title)
	}
}

// loadFavicon is a best-effort side fetch; every failure is silently
// ignored and it never gates the primary document.
func (v *View) loadFavicon(addr *web.Address) {
	v.loader.Load(addr,
		func(data []byte, _ *web.Headers) {
			icon, err := images.Decode(data)
			if err != nil {
				v.log.Debug("could not decode favicon",
					zap.String("url", addr.String()), zap.Error(err))
				return
			}
			if v.OnFaviconChange != nil {
				v.OnFaviconChange(icon)
			}
		},
		func(string) {})
}

// loadErrorPage installs a user-visible error document carrying the
// escaped failed address and message. The template is fetched from
// ErrorTemplateAddress so embedders can brand it; any failure there falls
// back to the built-in template, so reporting an error never hard-fails.
func (v *View) loadErrorPage(gen uint64, failed *web.Address, message string) {
	install := func(template string) {
		if gen != v.generation {
			return
		}
		markup := fmt.Sprintf(template,
			gohtml.EscapeString(failed.String()),
			gohtml.EscapeString(message))
		doc, err := v.builder.ParseHTML(markup, failed)
		if err != nil {
			v.log.Warn("error template did not parse, using built-in",
				zap.Error(err))
			markup = fmt.Sprintf(builtinErrorTemplate,
				gohtml.EscapeString(failed.String()),
				gohtml.EscapeString(message))
			doc, err = v.builder.ParseHTML(markup, failed)
			if err != nil {
				return
			}
		}
		v.SetDocument(doc)
		if v.OnTitleChange != nil {
			v.OnTitleChange(doc.Title)
		}
	}

	v.loader.Load(web.ParseAddress(ErrorTemplateAddress),
		func(data []byte, _ *web.Headers) {
			if len(data) == 0 {
				install(builtinErrorTemplate)
				return
			}
			install(string(data))
		},
		func(message string) {
			v.log.Debug("error template fetch failed, using built-in",
				zap.String("error", message))
			install(builtinErrorTemplate)
		})
}

// Reload re-issues the load for the current document's address.
func (v *View) Reload() {
	if v.doc == nil || v.doc.Base == nil {
		return
	}
	v.Load(v.doc.Base)
}

// SetDocument installs a document as current, replacing any previous one.
// The previous document's layout tree, hover state, and selection die
// with it.
func (v *View) SetDocument(newDoc *html.Document) {
	if newDoc == v.doc {
		return
	}

	if v.doc != nil {
		v.doc.OnLayoutUpdated = nil
	}

	// Selection endpoints reference the outgoing layout tree; back to
	// idle before the tree goes away.
	v.inMouseSelection = false
	v.layoutRoot = nil

	v.doc = newDoc

	if v.OnSetDocument != nil {
		v.OnSetDocument(newDoc)
	}

	if newDoc != nil {
		newDoc.OnLayoutUpdated = func() {
			v.LayoutAndSyncSize()
			v.requestRepaint()
		}
	}

	v.LayoutAndSyncSize()
	v.requestRepaint()
}

// LayoutAndSyncSize reconciles content size with scrollbar visibility:
// one layout pass, and exactly one more if that pass changed which
// scrollbars are shown. Visibility changes after the second pass are not
// chased further.
func (v *View) LayoutAndSyncSize() {
	if v.doc == nil {
		return
	}

	hadVertical := v.vScroll.Visible()
	hadHorizontal := v.hScroll.Visible()

	v.layoutOnce()

	if v.vScroll.Visible() != hadVertical || v.hScroll.Visible() != hadHorizontal {
		v.layoutOnce()
	}

	v.doc.SetViewportRect(v.VisibleContentRect())
}

func (v *View) layoutOnce() {
	avail := v.availableSize()
	v.layoutRoot = v.engine.Layout(v.doc, float64(avail.X))
	v.setContentSize(image.Pt(int(v.layoutRoot.Width), int(v.layoutRoot.Height)))
}

func (v *View) setContentSize(size image.Point) {
	v.contentSize = size
	avail := v.availableSize()
	v.hScroll.configure(size.X, avail.X)
	v.vScroll.configure(size.Y, avail.Y)
}

// availableSize is the viewport size minus the space taken by visible
// scrollbars.
func (v *View) availableSize() image.Point {
	size := v.viewportSize
	if v.vScroll.Visible() {
		size.X -= scrollbarThickness
	}
	if v.hScroll.Visible() {
		size.Y -= scrollbarThickness
	}
	return size
}

// VisibleContentRect is the currently visible rectangle in content
// coordinates.
func (v *View) VisibleContentRect() image.Rectangle {
	avail := v.availableSize()
	return image.Rect(
		v.hScroll.Value(), v.vScroll.Value(),
		v.hScroll.Value()+avail.X, v.vScroll.Value()+avail.Y)
}

// ContentSize returns the scrollable content size from the last layout.
func (v *View) ContentSize() image.Point { return v.contentSize }

// VerticalScrollBar exposes the vertical scrollbar model.
func (v *View) VerticalScrollBar() *ScrollBar { return &v.vScroll }

// HorizontalScrollBar exposes the horizontal scrollbar model.
func (v *View) HorizontalScrollBar() *ScrollBar { return &v.hScroll }

// Resize updates the viewport size and lays the document out again.
func (v *View) Resize(size image.Point) {
	v.viewportSize = size
	v.LayoutAndSyncSize()
	v.requestRepaint()
}

// ScrollToAnchor scrolls the named in-document anchor into view. The
// element is found by id, falling back to <a name=...>.
func (v *View) ScrollToAnchor(name string) {
	if v.doc == nil {
		return
	}
	element := v.doc.ElementByID(name)
	if element == nil {
		element = v.doc.AnchorByName(name)
	}
	if element == nil {
		v.log.Debug("anchor not found", zap.String("name", name))
		return
	}
	box := v.boxForElement(element)
	if box == nil {
		v.log.Debug("anchor found but has no layout node", zap.String("name", name))
		return
	}
	v.vScroll.SetValue(int(box.Y))
	v.didScroll()
	v.setCursor(CursorDefault)
}

// boxForElement finds the layout box for an element, falling back to the
// first descendant that produced one.
func (v *View) boxForElement(element *html.Node) *layout.Box {
	if v.layoutRoot == nil {
		return nil
	}
	if box := v.layoutRoot.BoxForNode(element); box != nil {
		return box
	}
	for _, child := range element.Children {
		if box := v.boxForElement(child); box != nil {
			return box
		}
	}
	return nil
}

func (v *View) scrollToTop() {
	v.vScroll.SetValue(0)
	v.hScroll.SetValue(0)
	v.didScroll()
}

// didScroll propagates the new visible rectangle into the document.
func (v *View) didScroll() {
	if v.doc != nil {
		v.doc.SetViewportRect(v.VisibleContentRect())
	}
	v.requestRepaint()
}

// Paint renders the current state onto the painter: background only when
// no layout tree exists, the full tree otherwise.
func (v *View) Paint(p *render.Painter) {
	view := render.View{
		Visible: image.Rectangle{Max: v.viewportSize},
		ScrollX: v.hScroll.Value(),
		ScrollY: v.vScroll.Value(),
	}
	if v.doc != nil {
		view.Background = v.doc.BackgroundColor()
	}
	p.Paint(v.layoutRoot, v.doc, view)
}

// runJavaScriptURL executes the inline-script target of a javascript:
// link against the current document.
func (v *View) runJavaScriptURL(href string) {
	source := href[len("javascript:"):]
	v.log.Debug("running javascript url", zap.String("source", source))
	if v.doc == nil {
		return
	}
	if err := v.jsEngine.Run(v.doc, source); err != nil {
		v.log.Warn("javascript url failed", zap.Error(err))
	}
}

func (v *View) requestRepaint() {
	if v.OnRepaintRequested != nil {
		v.OnRepaintRequested()
	}
}

func (v *View) setCursor(c Cursor) {
	if v.OnCursorChange != nil {
		v.OnCursorChange(c)
	}
}
