// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package hasher derives fingerprints for store items.
//
// A fingerprint is a short string that changes whenever the item changes.
// When the store records a native modification timestamp the fingerprint is
// that timestamp in ISO-8601 form; reading it is cheap and does not require
// the full content. Otherwise the fingerprint is a BLAKE2b-256 digest of the
// serialized payload.
//
// Items without a timestamp are stamped with [Epoch] before they are
// serialized, so formats that embed the timestamp (vCard REV, iCalendar
// LAST-MODIFIED) serialize identically on every call and the digest stays
// stable until the content really changes.
package hasher

import (
	"encoding/base64"
	"time"

	"github.com/MKhiriev/go-pim-sync/models"
	"golang.org/x/crypto/blake2b"
)

// Epoch is the fixed timestamp put on items that carry no native
// modification time.
var Epoch = time.Unix(0, 0).UTC()

// TimestampLayout is the ISO-8601 layout used for timestamp fingerprints.
const TimestampLayout = "2006-01-02T15:04:05Z07:00"

// Valid reports whether ts is a usable native modification timestamp.
// The zero time and [Epoch] are not.
func Valid(ts time.Time) bool {
	return !ts.IsZero() && !ts.Equal(Epoch)
}

// Stamp canonicalizes the modification time of item: the native timestamp
// ts when ok and valid, [Epoch] otherwise.
func Stamp(item *models.Item, ts time.Time, ok bool) {
	if ok && Valid(ts) {
		item.LastModified = ts.UTC()
		return
	}
	item.LastModified = Epoch
}

// Fingerprint returns the fingerprint of item. It depends only on
// item.LastModified and item.Payload, so it must be called after [Stamp]
// and after the payload was serialized.
func Fingerprint(item models.Item) string {
	if Valid(item.LastModified) {
		return item.LastModified.UTC().Format(TimestampLayout)
	}
	return Digest(item.Payload)
}

// Digest returns the base64 encoded BLAKE2b-256 sum of payload. An empty
// payload is a valid input.
func Digest(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}
