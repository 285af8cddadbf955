package imagefetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
	"golang.org/x/time/rate"

	"doordeck/internal/throttle"
)

var (
	ErrHTTPStatus = errors.New("unexpected HTTP status")
	ErrNoURL      = errors.New("no image URL")
)

// Options controls how fetched images are stored
type Options struct {
	UserAgent   string
	Timeout     time.Duration
	JPEGQuality int
	Overwrite   bool
}

// Item is one image to fetch
type Item struct {
	Name string
	URL  string
	Path string
}

// Result records where an item ended up. Err is set when it was skipped.
type Result struct {
	Name string
	Path string
	Err  error
}

// Fetcher downloads images and stores them as RGB JPEGs
type Fetcher struct {
	client  *resty.Client
	opts    Options
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates an image fetcher. limiter spaces out downloads.
func New(opts Options, limiter *rate.Limiter, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = throttle.New(0)
	}
	if opts.JPEGQuality == 0 {
		opts.JPEGQuality = 90
	}

	client := resty.New().SetTimeout(opts.Timeout)
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Fetcher{client: client, opts: opts, limiter: limiter, logger: logger}
}

// Fetch downloads url and writes it to dst as a JPEG. An existing dst is
// kept unless Overwrite is set.
func (f *Fetcher) Fetch(ctx context.Context, url, dst string) (string, error) {
	if url == "" {
		return "", ErrNoURL
	}
	if !f.opts.Overwrite {
		if _, err := os.Stat(dst); err == nil {
			f.logger.Debug("image already exists", zap.String("path", dst))
			return dst, nil
		}
	}

	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("%w: GET %s: %s", ErrHTTPStatus, url, res.Status())
	}

	img, format, err := image.Decode(bytes.NewReader(res.Body()))
	if err != nil {
		return "", fmt.Errorf("failed to decode image from %s: %w", url, err)
	}
	f.logger.Debug("decoded image", zap.String("url", url), zap.String("format", format))

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := imaging.Save(Flatten(img), dst, imaging.JPEGQuality(f.opts.JPEGQuality)); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", dst, err)
	}
	return dst, nil
}

// FetchAll fetches items one at a time. Failures are logged and recorded in
// the result, and do not stop the run.
func (f *Fetcher) FetchAll(ctx context.Context, items []Item) ([]Result, error) {
	results := make([]Result, 0, len(items))
	for _, item := range items {
		if err := f.limiter.Wait(ctx); err != nil {
			return results, err
		}

		path, err := f.Fetch(ctx, item.URL, item.Path)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			f.logger.Warn("failed to fetch image", zap.String("name", item.Name), zap.String("url", item.URL), zap.Error(err))
			results = append(results, Result{Name: item.Name, Path: item.Path, Err: err})
			continue
		}

		f.logger.Info("saved image", zap.String("name", item.Name), zap.String("path", path))
		results = append(results, Result{Name: item.Name, Path: path})
	}
	return results, nil
}

// Flatten composites img over white and drops the alpha channel
func Flatten(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// FileName returns the local path for a named image
func FileName(dir, name, prefix string) string {
	return filepath.Join(dir, prefix+sanitize(name)+".jpg")
}

func sanitize(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "<", "_", ">", "_", "|", "_", "\"", "_")
	return replacer.Replace(strings.TrimSpace(name))
}
