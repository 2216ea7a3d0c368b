// Package cardpress is the composition-and-export engine behind a photo
// greeting card maker. It owns the in-memory card state (photo slots,
// text stickers, theme/layout/size selections), keeps element positions
// resolution independent by storing them as percentages of their
// container, derives the photo grid geometry from the slot count, and
// exports the rendered card as a raster image through a headless
// browser snapshot.
//
// The credential relay and the image hosting service are external;
// upload.go speaks to them at their HTTP boundary and nothing more.
package cardpress
