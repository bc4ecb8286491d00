// Package domain contains the core business entities for Stampede:
// templates, containers, documents, generation requests and reports.
//
// Domain types have no dependencies on adapters or infrastructure.
// They represent the ubiquitous language of bulk page duplication.
package domain
