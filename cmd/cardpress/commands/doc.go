// Package commands defines the cardpress CLI.
//
// Commands
//
//   - render   Render a card file to HTML or a raster image
//   - upload   Upload a photo to the hosting service and print its URL
//
// # Implementation
//
// The root command carries the upload configuration (relay base URL and
// hosting public key) as persistent flags with environment fallbacks, so
// subcommands share one validated Config.
package commands
