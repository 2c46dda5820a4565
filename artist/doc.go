// Package artist defines what every drawable object shares: visibility,
// alpha, z-order, clipping, a bound transform, a legend label and
// property-change observers.
//
// Concrete artists embed [Base] and describe their settable properties in
// a [Schema], a static table of setters, getters and aliases. [Setp] and
// [Getp] dispatch through that table by name:
//
//	artist.Setp(line, "lw", 2, "color", "r")
//	w, _ := artist.Getp(line, "linewidth")
package artist
