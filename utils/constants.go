// File: utils/constants.go
package utils

import "time"

// ReceiptSeqPrefix prefixes the per-day receipt counter keys in Redis.
const ReceiptSeqPrefix = "pos:receipt-seq:"

// ReceiptSeqTTL keeps a day's counter around long enough to span timezones.
const ReceiptSeqTTL = 48 * time.Hour

// DateLayout is the calendar-date format stored on bookings and analytics rows.
const DateLayout = "2006-01-02"
