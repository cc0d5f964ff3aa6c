// Package repackdb crawls a game repack catalog site, extracts structured
// records from its listing and detail pages, and reconciles them into a
// local SQLite database keyed by canonical post URL.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package repackdb
