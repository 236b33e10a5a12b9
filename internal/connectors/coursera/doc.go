// Package coursera implements a learning-resource provider backed by the
// public Coursera catalog API (courses.v1, q=search).
//
// The catalog API needs no credentials and reports no enrolment or rating
// numbers, so the provider has no popularity metrics: its results rank on
// relevance alone. Course URLs are built from the slug,
// https://www.coursera.org/learn/{slug}, and specializations link to
// https://www.coursera.org/specializations/{slug}.
package coursera
