// Package bidfilter extracts procurement bids from listing pages whose
// markup it does not control, then filters, sorts and re-orders them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, xxhash/).
package bidfilter
