// Package imaging provides the image I/O and pixel operations of the dataset
// pipeline.
//
// This package loads page images and score maps, crops word patches, writes
// them to disk and renders debug overlays of detected word boxes. All
// operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Formats
//
// Decoding supports PNG, JPEG and GIF from the standard library plus BMP,
// TIFF and WebP from golang.org/x/image. Patches are encoded as JPEG (quality
// 100) or PNG, chosen by the output file extension.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Crop regions outside image bounds or with zero area
//   - File I/O errors during image loading
//   - Encoding errors during image output
package imaging
