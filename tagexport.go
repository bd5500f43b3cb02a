// Package tagexport extracts selected elements from web pages together with
// their computed text color, background color and font size, and exports
// them as CSV files.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, fs/).
package tagexport
