// Package models defines the employee records exchanged between the personnel
// record source and the local directory.
//
// ExternalRecord is the authoritative shape decoded from the source.
// LocalRecord is a directory row whose columns vary by deployment, so it keeps
// its values in a map and tracks which columns a sync pass wrote.
package models
