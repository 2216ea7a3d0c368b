package cardpress

import (
	"fmt"
	"strings"
	"testing"
)

func TestGenerateHTMLBasics(t *testing.T) {
	s := NewStore(StoreOptions{})
	s.SetRecipient("Maya & Co <3")
	s.SetSender("Granddad")
	s.SetMessage("Happy birthday!")
	s.SetSlotImage(0, SlotImage{URL: "https://img.example/a.jpg", OriginalName: "a.jpg"})
	s.SetSlotPosition(0, Position{X: 80, Y: 20})
	s.AddSticker("Hi")

	out, err := GenerateHTML(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}

	theme := ThemeByID(DefaultThemeID)
	size := CardSizeByID(DefaultCardSizeID)
	for name, want := range map[string]string{
		"card surface at preview size": fmt.Sprintf("width: %dpx; height: %dpx", size.PreviewWidth, size.PreviewHeight),
		"theme background":             theme.Background,
		"focal point as object-position": "object-position: 80.00% 20.00%",
		"sticker at its anchor":          `left: 70.00%; top: 20.00%`,
		"sticker text":                   ">Hi</div>",
		"escaped recipient":              "Dear Maya &amp; Co &lt;3,",
		"message body":                   "Happy birthday!",
		"sender line":                    "&mdash; Granddad",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("%s: output missing %q", name, want)
		}
	}
}

func TestGenerateHTMLEmptySlotHasNoImage(t *testing.T) {
	s := NewStore(StoreOptions{})
	out, err := GenerateHTML(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<img") {
		t.Error("empty slots should render no img element")
	}
	if got := strings.Count(out, "photo-cell"); got < 2 {
		t.Errorf("expected both placeholder cells in the markup, found %d", got)
	}
}

func TestGenerateHTMLStickerTones(t *testing.T) {
	s := NewStore(StoreOptions{})
	s.SetTheme("dusk")
	id := s.AddSticker("ink me").Stickers[0].ID
	tone := ToneInk
	s.UpdateSticker(id, StickerOverride{Tone: &tone})

	out, err := GenerateHTML(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	theme := ThemeByID("dusk")
	if !strings.Contains(out, "color: "+theme.InkColor) {
		t.Errorf("ink-tone sticker should use the theme ink color %q", theme.InkColor)
	}
}

func TestGenerateHTMLEscapesUserText(t *testing.T) {
	s := NewStore(StoreOptions{})
	s.AddSticker(`<script>alert("x")</script>`)
	out, err := GenerateHTML(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<script>") {
		t.Error("sticker text reached the markup unescaped")
	}
}

func TestGenerateHTMLRejectsNoSlots(t *testing.T) {
	if _, err := GenerateHTML(Composition{}); err == nil {
		t.Error("expected an error for a slotless composition")
	}
}

func TestGenerateHTMLFocusLayout(t *testing.T) {
	s := NewStore(StoreOptions{})
	s.SetLayout(LayoutFocus)
	s.AddSlot()
	out, err := GenerateHTML(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	layout := ComputeLayout(3, LayoutFocus)
	hero := fmt.Sprintf("left: %.2f%%; top: %.2f%%; width: %.2f%%; height: %.2f%%",
		layout.Hero.X, layout.Hero.Y, layout.Hero.Width, layout.Hero.Height)
	if !strings.Contains(out, hero) {
		t.Errorf("output missing hero cell geometry %q", hero)
	}
}
