// Package resworb exports personal browsing data (open tabs, cloud tabs,
// reading list, bookmarks and history) from the local storage of several
// browsers into a single record shape, and serializes it to a file.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, lz4/, plist/).
package resworb
