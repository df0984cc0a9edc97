// Package model defines the relational model produced per component schema:
// the Model/Column descriptors, the Base registry every generated model is
// attached to, the Factory contract the cached factory satisfies, and the SQL
// dialects used to emit DDL for registered models.
package model
