// Package schema indexes the structural metadata of a data source: for every
// entity, its terminal fields in declaration order with their primitive
// types, and the associations that link it to other entities.
//
// Associations are kept on the snapshot but never scored; only terminal
// fields take part in a suggestion search.
package schema
