// models.go
package cardpress

// --- Composition Structs ---

// Position is a point in normalized card coordinates: each axis is a
// percentage (0-100) of the container's width/height, so the same pair
// lands on the same visual spot at any pixel size.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PhotoSlot is one addressable photo placeholder. A slot may be empty
// (SourceURL == ""). Position is the focal point of the image within its
// frame, used as the CSS object-position when rendering.
type PhotoSlot struct {
	UID          string   `json:"uid,omitempty"` // stable identity; index is display order only
	SourceURL    string   `json:"source_url"`
	OriginalName string   `json:"original_name,omitempty"`
	ByteSize     int64    `json:"byte_size,omitempty"`
	MimeType     string   `json:"mime_type,omitempty"`
	Position     Position `json:"position"`
	Uploading    bool     `json:"-"`
}

// Empty reports whether the slot has no image.
func (s PhotoSlot) Empty() bool { return s.SourceURL == "" }

// TextSticker is a free-floating text element. Position is the sticker's
// anchor (center) on the composition surface.
type TextSticker struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Position Position `json:"position"`
	Size     float64  `json:"size"` // font size in px, kept within [MinStickerSize, MaxStickerSize]
	Tone     string   `json:"tone"` // "accent" or "ink"
}

// Sticker tones select a color role from the active theme.
const (
	ToneAccent = "accent"
	ToneInk    = "ink"
)

// Sticker font size bounds.
const (
	MinStickerSize = 12.0
	MaxStickerSize = 36.0
)

// Composition is the aggregate root owned by the Store. Slots are ordered;
// stickers are addressed by id.
type Composition struct {
	Recipient  string        `json:"recipient"`
	Sender     string        `json:"sender"`
	Message    string        `json:"message"`
	ThemeID    string        `json:"theme"`
	LayoutID   string        `json:"layout"`
	CardSizeID string        `json:"card_size"`
	Slots      []PhotoSlot   `json:"slots"`
	Stickers   []TextSticker `json:"stickers"`
}

// --- Override Structs ---

// StickerOverride carries a partial sticker update; nil fields are left
// untouched by UpdateSticker.
type StickerOverride struct {
	Text *string  `json:"text,omitempty"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Size *float64 `json:"size,omitempty"`
	Tone *string  `json:"tone,omitempty"`
}

// --- Catalog Structs ---

// Theme is a read-only catalog entry; the core never mutates it.
type Theme struct {
	ID          string `json:"id"`
	Background  string `json:"background"`
	AccentColor string `json:"accent_color"`
	InkColor    string `json:"ink_color"`
	Shadow      string `json:"shadow"`
}

// CardSize parameterizes the preview surface and the export scale.
type CardSize struct {
	ID            string  `json:"id"`
	PreviewWidth  int     `json:"preview_width"`
	PreviewHeight int     `json:"preview_height"`
	ExportScale   float64 `json:"export_scale"`
}

// Layout variants for the photo grid.
const (
	LayoutDuo   = "duo"   // all slots in one grid, message panel alongside
	LayoutFocus = "focus" // slot 0 as hero, the rest in a secondary grid
)

// --- Catalogs ---

var themes = []Theme{
	{ID: "meadow", Background: "#f2f7ec", AccentColor: "#4a7c59", InkColor: "#23301f", Shadow: "0 4px 12px rgba(35,48,31,0.25)"},
	{ID: "dusk", Background: "#2b2d42", AccentColor: "#ef8354", InkColor: "#edf2f4", Shadow: "0 4px 14px rgba(0,0,0,0.45)"},
	{ID: "linen", Background: "#faf4ea", AccentColor: "#b5651d", InkColor: "#3d3229", Shadow: "0 3px 10px rgba(61,50,41,0.2)"},
}

var cardSizes = []CardSize{
	{ID: "classic", PreviewWidth: 480, PreviewHeight: 640, ExportScale: 2},
	{ID: "square", PreviewWidth: 540, PreviewHeight: 540, ExportScale: 2},
	{ID: "grand", PreviewWidth: 620, PreviewHeight: 820, ExportScale: 3},
}

// Catalog defaults, used when a composition references an unknown id.
const (
	DefaultThemeID    = "meadow"
	DefaultLayoutID   = LayoutDuo
	DefaultCardSizeID = "classic"
)

// Themes returns the theme catalog.
func Themes() []Theme { return themes }

// CardSizes returns the card size catalog.
func CardSizes() []CardSize { return cardSizes }

// ThemeByID looks up a theme, falling back to the default entry.
func ThemeByID(id string) Theme {
	for _, t := range themes {
		if t.ID == id {
			return t
		}
	}
	return themes[0]
}

// CardSizeByID looks up a card size, falling back to the default entry.
func CardSizeByID(id string) CardSize {
	for _, cs := range cardSizes {
		if cs.ID == id {
			return cs
		}
	}
	return cardSizes[0]
}

// ValidLayout reports whether id names a known layout variant.
func ValidLayout(id string) bool {
	return id == LayoutDuo || id == LayoutFocus
}
