// Package refonte harvests structured content from the GISTI website
// (a legacy SPIP-driven CMS), persists it as JSON collections, and splices
// the records into the static HTML pages of the redesign prototype.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, fs/, http/).
package refonte
