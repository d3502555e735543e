// ABOUTME: Version constants for the relay listener
// ABOUTME: Identifies the product in hello messages and logs
package version

const (
	// Version is the software version
	Version = "0.3.0"

	// Product is the product name
	Product = "Relay Listener"

	// Manufacturer identifies the vendor
	Manufacturer = "Relaywire"
)
