// Package files provides discovery of the institutional input files and
// decoding of their legacy text encodings. Enrollment and survey exports
// come from office tooling and arrive as UTF-8, Windows-1252 or Latin-1;
// everything downstream works on decoded UTF-8.
package files
