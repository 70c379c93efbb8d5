// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

/*
Package pathtemplate implements bidirectional path templates: named declarative patterns
that extract structured data from paths and format structured data back into paths.

Pattern grammar:
  - literal text, with "\" escaping the next character
  - placeholder "{key}" or "{key:expression}", key is a dotted path such as "job.code"
  - optional segment "[...]", emitted or matched as one unit, may nest
  - reference "{@name}", splices another named pattern at compile time

Basic flow:
  - create templates (`NewTemplate`) or load a schema definition (`LoadSchemaFile`)
  - extract data from a path (`Template.Parse` / `Schema.Parse`)
  - produce a path from data (`Template.Format` / `Schema.Format`)
  - remap paths between naming conventions (`Schema.Map`)

For templates spread across many schema files, use `Discoverer`:
  - create discoverer over a go-billy filesystem
  - collect templates from search roots (`Discover`)
  - try them in order with `Parse` / `Format` package functions
*/
package pathtemplate
