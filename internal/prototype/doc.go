// Package prototype defines the identity shared by every converted
// prototype and the small interfaces the rest of the system relies on.
//
// A concrete prototype type is a Go struct that embeds PrototypeBase and one
// layer struct per kind in its ancestry. The layers carry `proto` struct tags
// that the registry compiles into field descriptors.
package prototype
