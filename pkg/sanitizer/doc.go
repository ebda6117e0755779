// Package sanitizer provides input normalization for content and enquiry data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings or empty slices rather than errors.
//
// Normalization includes:
//   - Phone numbers: Convert to E.164 format (+[country][number])
//   - URLs: Enforce HTTPS, lowercase domains, preserve paths
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Categories: Lowercase after whitespace normalization
//   - Slices: Remove duplicates and empty values after normalization
package sanitizer
