// store.go
package cardpress

import (
	"fmt"
	"sync"
)

// --- Composition Store ---
//
// The Store owns the canonical composition state. Every other component
// reads a snapshot and requests mutations through it. Mutations are
// synchronous and return the updated snapshot so callers can re-render
// immediately.
//
// Slots are index-addressed from the outside (display order) but carry a
// stable generated uid internally. Async upload results resolve against
// the uid, so a response landing after its slot was removed or reordered
// is simply discarded instead of clobbering whatever moved into that
// index.

// StoreOptions carries the product limits. Both have fixed defaults but
// are deliberately not hard-coded constants.
type StoreOptions struct {
	MinSlots    int // slot count never drops below this (default 2)
	MaxStickers int // AddSticker is a no-op at this count (default 3)
}

// Default product limits.
const (
	DefaultMinSlots    = 2
	DefaultMaxStickers = 3
)

// DefaultMessage seeds a fresh composition.
const DefaultMessage = "Wishing you a wonderful day!"

// Sticker creation defaults.
var defaultStickerPosition = Position{X: 70, Y: 20}

const defaultStickerSize = 18.0

// SlotImage is the image payload written into a slot after an upload
// resolves (or directly, for pre-hosted images).
type SlotImage struct {
	URL          string
	OriginalName string
	ByteSize     int64
	MimeType     string
}

// Store holds one composition for the lifetime of a session. Safe for
// concurrent use; upload completions arrive from other goroutines.
type Store struct {
	mu         sync.Mutex
	comp       Composition
	opts       StoreOptions
	slotSeq    int
	stickerSeq int
	status     string
}

// NewStore creates a store seeded with the minimum number of empty slots,
// the default message and the default theme/layout/size selections.
func NewStore(opts StoreOptions) *Store {
	if opts.MinSlots < 1 {
		opts.MinSlots = DefaultMinSlots
	}
	if opts.MaxStickers < 1 {
		opts.MaxStickers = DefaultMaxStickers
	}
	s := &Store{
		opts: opts,
		comp: Composition{
			Message:    DefaultMessage,
			ThemeID:    DefaultThemeID,
			LayoutID:   DefaultLayoutID,
			CardSizeID: DefaultCardSizeID,
		},
	}
	for i := 0; i < opts.MinSlots; i++ {
		s.comp.Slots = append(s.comp.Slots, s.newSlot())
	}
	return s
}

// NewStoreFrom seeds a store and replays a saved composition through the
// public operations, so a hand-edited card file still ends up obeying
// every invariant (slot floor, sticker cap, clamped positions, known
// catalog ids).
func NewStoreFrom(comp Composition, opts StoreOptions) *Store {
	s := NewStore(opts)
	s.SetRecipient(comp.Recipient)
	s.SetSender(comp.Sender)
	if comp.Message != "" {
		s.SetMessage(comp.Message)
	}
	s.SetTheme(comp.ThemeID)
	s.SetLayout(comp.LayoutID)
	s.SetCardSize(comp.CardSizeID)
	for len(s.Snapshot().Slots) < len(comp.Slots) {
		s.AddSlot()
	}
	for i, slot := range comp.Slots {
		if slot.Empty() {
			continue
		}
		s.SetSlotImage(i, SlotImage{
			URL:          slot.SourceURL,
			OriginalName: slot.OriginalName,
			ByteSize:     slot.ByteSize,
			MimeType:     slot.MimeType,
		})
		s.SetSlotPosition(i, slot.Position)
	}
	for _, st := range comp.Stickers {
		before := len(s.Snapshot().Stickers)
		snap := s.AddSticker(st.Text)
		if len(snap.Stickers) == before {
			break // sticker cap reached
		}
		added := snap.Stickers[len(snap.Stickers)-1]
		s.UpdateSticker(added.ID, StickerOverride{
			X:    &st.Position.X,
			Y:    &st.Position.Y,
			Size: &st.Size,
			Tone: &st.Tone,
		})
	}
	return s
}

// newSlot mints an empty slot with a fresh uid. Caller holds s.mu (or is
// still inside NewStore).
func (s *Store) newSlot() PhotoSlot {
	s.slotSeq++
	return PhotoSlot{
		UID:      fmt.Sprintf("p%d", s.slotSeq),
		Position: Position{X: 50, Y: 50},
	}
}

// snapshotLocked deep-copies the composition. Caller holds s.mu.
func (s *Store) snapshotLocked() Composition {
	out := s.comp
	out.Slots = append([]PhotoSlot(nil), s.comp.Slots...)
	out.Stickers = append([]TextSticker(nil), s.comp.Stickers...)
	return out
}

// Snapshot returns a copy of the current composition.
func (s *Store) Snapshot() Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// --- Slot Operations ---

// AddSlot appends one empty slot.
func (s *Store) AddSlot() Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comp.Slots = append(s.comp.Slots, s.newSlot())
	return s.snapshotLocked()
}

// RemoveSlot deletes the slot at index, preserving the order of the
// remaining slots. At the slot floor the targeted slot is cleared in
// place instead of removed. Either way the slot's uid is retired, so an
// in-flight upload against it is abandoned.
func (s *Store) RemoveSlot(index int) Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.comp.Slots) {
		return s.snapshotLocked()
	}
	if len(s.comp.Slots) <= s.opts.MinSlots {
		s.comp.Slots[index] = s.newSlot()
		return s.snapshotLocked()
	}
	s.comp.Slots = append(s.comp.Slots[:index], s.comp.Slots[index+1:]...)
	return s.snapshotLocked()
}

// SwapFirstTwo exchanges slots 0 and 1 in place, all fields included.
func (s *Store) SwapFirstTwo() Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.comp.Slots) >= 2 {
		s.comp.Slots[0], s.comp.Slots[1] = s.comp.Slots[1], s.comp.Slots[0]
	}
	return s.snapshotLocked()
}

// SetSlotImage fills or replaces the slot's image and resets the focal
// point to the frame midpoint.
func (s *Store) SetSlotImage(index int, img SlotImage) Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.comp.Slots) {
		s.setSlotImageLocked(index, img)
	}
	return s.snapshotLocked()
}

func (s *Store) setSlotImageLocked(index int, img SlotImage) {
	slot := &s.comp.Slots[index]
	slot.SourceURL = img.URL
	slot.OriginalName = img.OriginalName
	slot.ByteSize = img.ByteSize
	slot.MimeType = img.MimeType
	slot.Position = Position{X: 50, Y: 50}
}

// SetSlotPosition clamps and stores the slot's focal point. Empty slots
// have no image to refocus, so the call is a no-op for them.
func (s *Store) SetSlotPosition(index int, p Position) Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.comp.Slots) && !s.comp.Slots[index].Empty() {
		s.comp.Slots[index].Position = clampPosition(p)
	}
	return s.snapshotLocked()
}

// SetSlotPositionUID is SetSlotPosition addressed by the slot's stable
// uid instead of its display index. Drag sinks bound to a uid keep
// writing to the right slot across reorders, and go quiet once the slot
// is removed.
func (s *Store) SetSlotPositionUID(uid string, p Position) Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comp.Slots {
		if s.comp.Slots[i].UID == uid && !s.comp.Slots[i].Empty() {
			s.comp.Slots[i].Position = clampPosition(p)
			break
		}
	}
	return s.snapshotLocked()
}

// --- Sticker Operations ---

// AddSticker creates a sticker with a fresh id and the creation defaults.
// Silently does nothing once the sticker cap is reached.
func (s *Store) AddSticker(text string) Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.comp.Stickers) >= s.opts.MaxStickers {
		return s.snapshotLocked()
	}
	s.stickerSeq++
	s.comp.Stickers = append(s.comp.Stickers, TextSticker{
		ID:       fmt.Sprintf("s%d", s.stickerSeq),
		Text:     text,
		Position: defaultStickerPosition,
		Size:     defaultStickerSize,
		Tone:     ToneAccent,
	})
	return s.snapshotLocked()
}

// RemoveSticker deletes the sticker with the given id; unknown ids are a
// no-op.
func (s *Store) RemoveSticker(id string) Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.comp.Stickers {
		if st.ID == id {
			s.comp.Stickers = append(s.comp.Stickers[:i], s.comp.Stickers[i+1:]...)
			break
		}
	}
	return s.snapshotLocked()
}

// UpdateSticker merges the provided fields into the sticker with the
// given id. Position is clamped, size kept within bounds, and an unknown
// tone keeps the current one.
func (s *Store) UpdateSticker(id string, ov StickerOverride) Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comp.Stickers {
		st := &s.comp.Stickers[i]
		if st.ID != id {
			continue
		}
		st.Text = getString(ov.Text, st.Text)
		st.Position = clampPosition(Position{
			X: getFloat64(ov.X, st.Position.X),
			Y: getFloat64(ov.Y, st.Position.Y),
		})
		st.Size = clamp(getFloat64(ov.Size, st.Size), MinStickerSize, MaxStickerSize)
		if tone := getString(ov.Tone, st.Tone); tone == ToneAccent || tone == ToneInk {
			st.Tone = tone
		}
		break
	}
	return s.snapshotLocked()
}

// --- Card Field Operations ---

// SetRecipient updates the recipient line.
func (s *Store) SetRecipient(v string) Composition { return s.setField(func(c *Composition) { c.Recipient = v }) }

// SetSender updates the sender line.
func (s *Store) SetSender(v string) Composition { return s.setField(func(c *Composition) { c.Sender = v }) }

// SetMessage updates the message body.
func (s *Store) SetMessage(v string) Composition { return s.setField(func(c *Composition) { c.Message = v }) }

// SetTheme selects a theme; unknown ids are a no-op.
func (s *Store) SetTheme(id string) Composition {
	return s.setField(func(c *Composition) {
		for _, t := range themes {
			if t.ID == id {
				c.ThemeID = id
				return
			}
		}
	})
}

// SetLayout selects a layout variant; unknown ids are a no-op.
func (s *Store) SetLayout(id string) Composition {
	return s.setField(func(c *Composition) {
		if ValidLayout(id) {
			c.LayoutID = id
		}
	})
}

// SetCardSize selects a card size; unknown ids are a no-op.
func (s *Store) SetCardSize(id string) Composition {
	return s.setField(func(c *Composition) {
		for _, cs := range cardSizes {
			if cs.ID == id {
				c.CardSizeID = id
				return
			}
		}
	})
}

func (s *Store) setField(mut func(*Composition)) Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	mut(&s.comp)
	return s.snapshotLocked()
}

// --- Upload Lifecycle ---
//
// Starting a second upload for a slot while one is in flight is allowed;
// neither request is cancelled and whichever response resolves last wins
// the slot. That race is accepted: one image ultimately occupies the
// slot.

// BeginUpload marks the slot as uploading and returns its uid, which the
// eventual completion must present to FinishUpload.
func (s *Store) BeginUpload(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.comp.Slots) {
		return "", fmt.Errorf("no slot at index %d", index)
	}
	s.comp.Slots[index].Uploading = true
	return s.comp.Slots[index].UID, nil
}

// FinishUpload applies an upload outcome to the slot identified by uid.
// If the uid no longer exists the result is discarded: the user removed
// or retired that slot while the request was in flight. On failure the
// slot keeps exactly the fields it had before the attempt and the error
// message becomes the current status.
func (s *Store) FinishUpload(uid string, img SlotImage, uploadErr error) Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comp.Slots {
		if s.comp.Slots[i].UID != uid {
			continue
		}
		s.comp.Slots[i].Uploading = false
		if uploadErr != nil {
			s.status = uploadErr.Error()
		} else {
			s.setSlotImageLocked(i, img)
			s.status = ""
		}
		break
	}
	return s.snapshotLocked()
}

// --- Status Message ---
//
// One user-visible message slot; each new message replaces the previous
// one. Errors are never fatal to the session.

// Status returns the current user-visible message, empty when clear.
func (s *Store) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetStatus replaces the user-visible message.
func (s *Store) SetStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = msg
}
