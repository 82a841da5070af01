// Package dataprocessing turns the institutional exports into normalized
// records and matches them against the graduate registry.
//
// # Architecture
//
// The package is organized around five components:
//
//  1. Normalizer: canonicalizes identifiers and names so records from
//     different exports can be compared
//  2. RegistryLoader: reads the graduate registry and builds the match
//     index (identifier lookup plus normalized-name fallback)
//  3. EnrollmentParser: flattens the sectioned postgraduate enrollment
//     exports into one record per student
//  4. SurveyLoader: reads the alumni survey exports and extracts one
//     graduation event per completed program
//  5. Matcher and Aggregator: associate enrollments with graduates and
//     group the results into report rows
//
// # Matching policy
//
// The matcher tries the normalized identifier first and falls back to the
// normalized full name only when the identifier finds nothing. A name
// shared by several graduates is reported as ambiguous and counts as
// unmatched; it is never resolved to one of the candidates. Every input
// record lands in exactly one of the four buckets (exact, name,
// ambiguous, none), so the partition always sums to the input size.
//
// # Error Handling
//
// Loaders return typed errors: a missing input file or a registry without
// an identifier column is fatal for the run, while data-quality findings
// (duplicate registry rows, ambiguous names) are logged and counted but
// never abort processing.
package dataprocessing
