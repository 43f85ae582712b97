// Package watch waits for removable-media insertion via udev netlink
// events, so an import can start as soon as a card reader mounts.
package watch
