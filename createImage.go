// createImage.go
package cardpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/image/bmp"
)

// Export error kinds. ErrExportFailed wraps every rasterization failure,
// including images that never finish loading (the headless-browser
// equivalent of a cross-origin tainted canvas).
var (
	ErrExportFailed   = errors.New("export failed")
	ErrExportInFlight = errors.New("an export is already in progress")
)

// How long the rasterizer waits for every referenced image to load
// before declaring the export failed.
const imageLoadTimeout = 15 * time.Second

// Image formats Export can encode.
var exportFormats = map[string]bool{"png": true, "jpg": true, "jpeg": true, "bmp": true}

// SupportedExportFormat reports whether format names an image encoding
// Export can produce.
func SupportedExportFormat(format string) bool {
	return exportFormats[strings.ToLower(format)]
}

// Exporter snapshots a composition into a raster image using a headless
// browser. Exactly one export runs at a time; a second request while one
// is in flight is rejected with ErrExportInFlight.
type Exporter struct {
	mu       sync.Mutex
	inFlight bool
}

// NewExporter returns a ready Exporter.
func NewExporter() *Exporter { return &Exporter{} }

// Export renders the composition HTML, loads it in headless Chrome with
// the device scale set to the card size's export scale, screenshots the
// card element and writes the encoded image to w. The resulting pixel
// dimensions are PreviewWidth*scale x PreviewHeight*scale. Transparency
// outside the card's rounded corners is preserved for PNG output.
func (e *Exporter) Export(ctx context.Context, comp Composition, format string, w io.Writer) error {
	format = strings.ToLower(format)
	if !exportFormats[format] {
		return fmt.Errorf("%w: unsupported image format %q", ErrExportFailed, format)
	}
	if !e.begin() {
		return ErrExportInFlight
	}
	defer e.end()

	// 1. Render the live composition to HTML.
	htmlString, err := GenerateHTML(comp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	// 2. Load it via a base64 data URI, no temp file needed.
	dataURI := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlString))
	log.Println("Created data URI for card HTML.")

	// 3. Setup chromedp.
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	// 4. Navigate, wait for every image, screenshot the card element.
	// The poll is what surfaces blocked cross-origin images: they never
	// reach complete with a natural size, the poll times out, and the
	// export fails instead of silently producing holes.
	size := CardSizeByID(comp.CardSizeID)
	var screenshotBuf []byte
	var imagesReady bool
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(
			int64(size.PreviewWidth), int64(size.PreviewHeight),
			chromedp.EmulateScale(size.ExportScale),
		),
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`#card`, chromedp.ByQuery),
		chromedp.Poll(
			`document.readyState === "complete" && Array.from(document.images).every(i => i.complete && i.naturalWidth > 0)`,
			&imagesReady,
			chromedp.WithPollingTimeout(imageLoadTimeout),
		),
		chromedp.Screenshot(`#card`, &screenshotBuf, chromedp.ByQuery),
	}

	log.Printf("Running chromedp tasks (viewport %dx%d @%gx, navigate, screenshot)...",
		size.PreviewWidth, size.PreviewHeight, size.ExportScale)
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return fmt.Errorf("%w: chromedp execution failed: %v", ErrExportFailed, err)
	}
	if len(screenshotBuf) == 0 {
		return fmt.Errorf("%w: screenshot buffer is empty", ErrExportFailed)
	}
	log.Println("Chromedp tasks completed successfully.")

	// 5. Encode. The screenshot is already PNG; other formats re-encode.
	if err := encodeScreenshot(screenshotBuf, format, w); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	log.Printf("Successfully encoded %s image.", strings.ToUpper(format))
	return nil
}

// begin claims the in-flight gate; false means an export is running.
func (e *Exporter) begin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight {
		return false
	}
	e.inFlight = true
	return true
}

func (e *Exporter) end() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
}

// encodeScreenshot converts the PNG screenshot bytes into the requested
// output format.
func encodeScreenshot(screenshot []byte, format string, w io.Writer) error {
	switch format {
	case "png":
		_, err := io.Copy(w, bytes.NewReader(screenshot))
		if err != nil {
			return fmt.Errorf("failed to write PNG screenshot data: %v", err)
		}
		return nil
	case "jpg", "jpeg":
		img, err := png.Decode(bytes.NewReader(screenshot))
		if err != nil {
			return fmt.Errorf("failed to decode PNG screenshot: %v", err)
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case "bmp":
		img, err := png.Decode(bytes.NewReader(screenshot))
		if err != nil {
			return fmt.Errorf("failed to decode PNG screenshot: %v", err)
		}
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("internal error: unsupported image format %q", format)
	}
}
