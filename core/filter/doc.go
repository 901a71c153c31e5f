// Package filter builds the query expressions understood by the personnel
// record source.
//
// An Expression is a (field, operator, values) triple validated when it is
// built. It only becomes text at the HTTP boundary, where Encode renders the
// wire forms:
//
//	field=value
//	field=greaterOrEqual::value
//	field=inList::v1,v2,...
package filter
