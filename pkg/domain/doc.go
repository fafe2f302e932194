// Package domain contains the data model shared by the classification engine,
// the application service and the transport layers: content items and their
// verdicts, reputation outcomes and risk assessments, form descriptors, links
// and the per-user feature toggles. The types are free of infrastructure
// concerns so they can be passed between packages without conversions.
package domain
