package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/a-h/templ"
	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"doordeck/internal/dataset"
	"doordeck/internal/deck"
	"doordeck/internal/views/pages"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Options configures the preview handlers
type Options struct {
	Layout       string
	PerSlide     int
	PreviewDir   string
	PreviewWidth int
	FileName     string // download name of the deck
}

// Handler serves previews of one built deck
type Handler struct {
	deck   *deck.Deck
	view   pages.DeckView
	opts   Options
	logger *zap.Logger

	mu       sync.Mutex
	previews []string
}

// New creates a handler for d, which was built from rows
func New(d *deck.Deck, rows []dataset.Row, opts Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.PerSlide <= 0 {
		opts.PerSlide = 3
	}
	if opts.FileName == "" {
		opts.FileName = "deck.pptx"
	}

	return &Handler{
		deck: d,
		view: pages.DeckView{
			Title:  d.Title,
			Layout: opts.Layout,
			Rows:   len(rows),
			Slides: Summaries(rows, opts.PerSlide),
		},
		opts:   opts,
		logger: logger,
	}
}

// Summaries groups row names the same way the builder groups rows into slides
func Summaries(rows []dataset.Row, perSlide int) []pages.SlideSummary {
	if perSlide <= 0 {
		perSlide = 3
	}
	var out []pages.SlideSummary
	for i, row := range rows {
		if i%perSlide == 0 {
			out = append(out, pages.SlideSummary{Number: len(out) + 1})
		}
		last := &out[len(out)-1]
		last.Names = append(last.Names, row.Name)
	}
	return out
}

// Home renders the slide overview
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	view := h.view
	view.ShareURL = getBaseURL(r) + "/"
	templ.Handler(pages.DeckPage(view)).ServeHTTP(w, r)
}

// Slide serves the PNG preview of slide {n}, counting from 1
func (h *Handler) Slide(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 || n > len(h.deck.Slides) {
		http.NotFound(w, r)
		return
	}

	paths, err := h.ensurePreviews()
	if err != nil {
		h.serverError(w, "failed to render previews", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, paths[n-1])
}

// Sheet serves every slide preview tiled into one image
func (h *Handler) Sheet(w http.ResponseWriter, r *http.Request) {
	paths, err := h.ensurePreviews()
	if err != nil {
		h.serverError(w, "failed to render previews", err)
		return
	}

	sheet, err := deck.ContactSheet(paths, 3)
	if err != nil {
		h.serverError(w, "failed to build contact sheet", err)
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, sheet, imaging.PNG); err != nil {
		h.serverError(w, "failed to encode contact sheet", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// Download streams the deck as a .pptx file
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := deck.WritePPTX(&buf, h.deck); err != nil {
		h.serverError(w, "failed to write deck", err)
		return
	}

	w.Header().Set("Content-Type", pptxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.opts.FileName))
	w.Write(buf.Bytes())
}

// QRCode serves a QR code pointing at this server, for opening the preview
// on a phone
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	png, err := generateQRCode(getBaseURL(r) + "/")
	if err != nil {
		h.serverError(w, "failed to generate QR code", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) ensurePreviews() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.previews != nil {
		return h.previews, nil
	}
	paths, err := deck.SavePreviews(h.deck, h.opts.PreviewDir, h.opts.PreviewWidth)
	if err != nil {
		return nil, err
	}
	h.logger.Info("rendered previews", zap.Int("slides", len(paths)), zap.String("dir", h.opts.PreviewDir))
	h.previews = paths
	return paths, nil
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// getBaseURL constructs the base URL from the request
func getBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := r.Host
	if forwardedHost := r.Header.Get("X-Forwarded-Host"); forwardedHost != "" {
		host = forwardedHost
	}
	return fmt.Sprintf("%s://%s", scheme, host)
}
