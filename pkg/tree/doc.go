// Package tree builds binary search trees from integer sequences and converts
// them to and from their serialized form.
//
// Two construction modes are supported:
//   - Insertion order: values are inserted one by one, equal values go left.
//   - Balanced: distinct sorted values, the lower middle element of each range
//     becomes the subtree root.
package tree
