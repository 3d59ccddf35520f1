// Package id generates and validates message identifiers.
//
// IDs are random UUIDv4 strings in canonical form. They appear in API
// responses and in durable queue records, so Valid is used wherever an id
// crosses back into the process from outside.
package id
