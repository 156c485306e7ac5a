// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package optionfile reads the option lists bureau-select offers.
//
// Three formats are accepted:
//
//   - JSON and JSONC (.json, .jsonc): comments and trailing commas are
//     stripped with tidwall/jsonc before decoding.
//   - YAML (.yaml, .yml), decoded with gopkg.in/yaml.v3.
//   - Plain lines: one option per line, from a file, stdin, or command
//     arguments. A tab separates the value from a display label.
//
// Structured files hold either a list of options or a mapping with an
// "options" list. An entry is a bare string (value and label) or an
// object with value, label, text_value and disabled fields.
//
// [Validate] rejects empty values and reports duplicate values as
// warnings. [BestMatch] ranks options against a query with fzf's
// fuzzy scoring to choose an initial selection.
package optionfile
