// generateHTML.go
package cardpress

import (
	"fmt"
	"strings"
)

// GenerateHTML renders the composition to a standalone HTML page. The
// page is what the rasterizer screenshots, so everything the preview
// shows (theme, derived layout, focal points, stickers, message panel)
// has to come out of this one function.
func GenerateHTML(comp Composition) (string, error) {
	if len(comp.Slots) == 0 {
		return "", fmt.Errorf("composition has no photo slots")
	}

	theme := ThemeByID(comp.ThemeID)
	size := CardSizeByID(comp.CardSizeID)
	layout := ComputeLayout(len(comp.Slots), comp.LayoutID)

	var b strings.Builder

	// --- Page Shell ---
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Card</title>\n")
	b.WriteString("<style>\n")
	b.WriteString("body { margin: 0; padding: 0; background: transparent; font-family: Georgia, 'Times New Roman', serif; }\n")
	b.WriteString(fmt.Sprintf("#card { position: relative; overflow: hidden; width: %dpx; height: %dpx; background: %s; border-radius: 10px; }\n",
		size.PreviewWidth, size.PreviewHeight, escapeCSS(theme.Background)))

	// --- Element Styles ---
	b.WriteString(".photo-cell { position: absolute; overflow: hidden; border-radius: 6px; background: rgba(127,127,127,0.12); }\n")
	b.WriteString(".photo-cell img { width: 100%; height: 100%; object-fit: cover; display: block; }\n")
	b.WriteString(".sticker { position: absolute; transform: translate(-50%, -50%); white-space: pre; font-weight: bold; text-shadow: 0 1px 2px rgba(0,0,0,0.15); z-index: 20; }\n")
	b.WriteString(fmt.Sprintf(".message-panel { position: absolute; box-sizing: border-box; padding: 12px 18px; color: %s; box-shadow: %s; background: rgba(255,255,255,0.06); }\n",
		escapeCSS(theme.InkColor), escapeCSS(theme.Shadow)))
	b.WriteString(fmt.Sprintf(".recipient { font-size: 20px; color: %s; margin: 0 0 4px 0; }\n", escapeCSS(theme.AccentColor)))
	b.WriteString(".message { font-size: 15px; margin: 0; white-space: pre-wrap; }\n")
	b.WriteString(".sender { font-size: 14px; font-style: italic; margin: 6px 0 0 0; text-align: right; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString("<div id=\"card\">\n")

	// --- Photo Cells ---
	for i, slot := range comp.Slots {
		if i >= len(layout.Cells) {
			break
		}
		cell := layout.Cells[i]
		b.WriteString(fmt.Sprintf("  <div class=\"photo-cell\" data-slot=\"%s\" style=\"left: %.2f%%; top: %.2f%%; width: %.2f%%; height: %.2f%%;\">",
			escapeHTML(slot.UID), cell.X, cell.Y, cell.Width, cell.Height))
		if !slot.Empty() {
			// The stored focal point becomes the object-position, which is
			// what keeps the pan resolution independent.
			b.WriteString(fmt.Sprintf("<img src=\"%s\" alt=\"%s\" style=\"object-position: %.2f%% %.2f%%;\">",
				escapeHTML(slot.SourceURL), escapeHTML(slot.OriginalName),
				slot.Position.X, slot.Position.Y))
		}
		b.WriteString("</div>\n")
	}

	// --- Stickers ---
	for _, st := range comp.Stickers {
		color := theme.AccentColor
		if st.Tone == ToneInk {
			color = theme.InkColor
		}
		b.WriteString(fmt.Sprintf("  <div class=\"sticker\" data-sticker=\"%s\" style=\"left: %.2f%%; top: %.2f%%; font-size: %.1fpx; color: %s;\">%s</div>\n",
			escapeHTML(st.ID), st.Position.X, st.Position.Y, st.Size, escapeCSS(color), escapeHTML(st.Text)))
	}

	// --- Message Panel ---
	panel := layout.MessagePanel
	b.WriteString(fmt.Sprintf("  <div class=\"message-panel\" style=\"left: %.2f%%; top: %.2f%%; width: %.2f%%; height: %.2f%%;\">\n",
		panel.X, panel.Y, panel.Width, panel.Height))
	if comp.Recipient != "" {
		b.WriteString(fmt.Sprintf("    <p class=\"recipient\">Dear %s,</p>\n", escapeHTML(comp.Recipient)))
	}
	b.WriteString(fmt.Sprintf("    <p class=\"message\">%s</p>\n", escapeHTML(comp.Message)))
	if comp.Sender != "" {
		b.WriteString(fmt.Sprintf("    <p class=\"sender\">&mdash; %s</p>\n", escapeHTML(comp.Sender)))
	}
	b.WriteString("  </div>\n")

	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String(), nil
}
