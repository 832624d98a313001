// Package chrono formats durations, calendar values and time points with
// strftime-style directives inside stdfmt replacement fields.
//
// Every value type implements [stdfmt.Formattable]. The format-spec accepts
// fill, alignment, width, precision (floating-point durations only) and "L",
// followed by chrono-specs made of literal text and %-directives:
//
//	stdfmt.Format("{:%H:%M:%S}", chrono.Milliseconds(3723500)) // "01:02:03.500"
//	stdfmt.Format("{:%Y-%m-%d}", chrono.Date(-5, chrono.March, 1)) // "-0005-03-01"
//	stdfmt.Format("{}", chrono.Seconds(90))                    // "90s"
//
// A directive the value cannot supply is a type error, found when the format
// string is parsed. Directives that render names or calendar positions check
// the value itself when it is rendered: a weekday name for an out-of-range
// weekday is a value error.
//
// Durations render their time-of-day directives from the magnitude of the
// duration, preceded by '-' when negative. Hours wrap at 24; %j counts whole
// days.
package chrono
