// Package design defines the declarative road design data model:
// horizontal alignment elements, vertical profile, superelevation,
// the cross-section template, and validation over the assembled design.
package design
