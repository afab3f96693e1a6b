// Package timezone resolves wall-clock time in the hotel's configured timezone.
//
//	now := timezone.Now()      // current instant in APP_TIMEZONE
//	today := timezone.Today()  // the hotel's calendar day, as midnight UTC
//
// APP_TIMEZONE takes IANA names ("UTC", "Asia/Jakarta", "Europe/London"); anything else falls back to UTC.
package timezone
