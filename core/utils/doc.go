// Package utils provides value conversion helpers shared by the directory
// store and the field mapper. Database drivers hand back loosely typed column
// values ([]byte, int64, time.Time); these helpers normalize them for
// comparison.
package utils
