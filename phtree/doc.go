// Package phtree implements a PH-Tree: a patricia-trie-style multi-dimensional
// spatial index over fixed-width binary keys, one key per dimension.
//
// The trie branches on one bit per dimension per level, so each node addresses
// up to 2^Dims children through a Dims-bit hypercube address. Runs of levels
// with no branching are skipped entirely (patricia compression); a node records
// the skipped distance to its parent as its infix length and the number of
// levels below itself as its postfix length. A postfix length of zero marks a
// leaf whose children are entries rather than nodes.
//
// Structure of a 1-dimensional, 4-bit-wide tree holding keys 0100, 0111 and 1010:
//
//	                 [root pfx=3]
//	                0/          \1
//	      [node pfx=1]          [leaf pfx=0 inf=1]
//	     0/          \1                 |
//	 [leaf pfx=0] [leaf pfx=0]       {1010}
//	     |            |
//	   {0100}       {0111}
//
// Two element variants share the same core:
//
//   - Map associates every point with a growable list of caller ids (a
//     multimap). Window queries fill a reusable result collection.
//   - Index stores one caller-managed element per point, created and
//     destroyed through callbacks supplied at construction. Queries drive a
//     visitor function, and even-dimensioned trees additionally support box
//     queries (lower-dimensional boxes encoded as points of doubled
//     dimensionality).
//
// Child storage is selectable per tree: a dense array of 2^Dims slots for low
// dimension counts, or a bitmap with a packed array (popcount indexing) that
// stays compact at higher dimension counts.
//
// The tree is not safe for concurrent use. Query results point at entries
// owned by the tree and are invalidated by any later mutation.
package phtree
