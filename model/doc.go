// Package model provides the intermediate representation (IR) for extracted
// OneNote content.
//
// This package defines the user-facing data structures that represent the
// semantic structure of a notebook. All reconstruction and extraction
// operations ultimately produce these types, making them the primary API
// for consuming extracted content.
//
// # Structure
//
// A [Notebook] holds [Section] values, one per section file; each Section
// holds [Page] values in document order; each Page carries an ordered list
// of [Element] values.
//
// # Elements
//
// All page content implements the [Element] interface. The concrete types
// are:
//
//   - [RichText] - formatted text with one or more [TextRun] values
//   - [Image] - an embedded picture with its binary data
//   - [Table] - rows and columns of nested element cells
//   - [EmbeddedFile] - an attached file with its binary data
//
// Values of these types are built once per parse and handed to renderers
// read-only; nothing mutates them afterwards.
package model
