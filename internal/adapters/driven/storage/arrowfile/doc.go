// Package arrowfile reads splits written by the Hugging Face datasets
// library's save_to_disk: a directory holding one or more Arrow IPC stream
// files plus a state.json naming them in order.
//
// Files are read with github.com/apache/arrow-go/v18. The stream format is
// tried first; the random-access file format is accepted as a fallback.
//
// Column handling:
//
//   - text: string or large_string; nulls and other types become absent text
//   - lonely: a list of integers per row; nulls become an absent annotation
//   - every other column is decoded to plain Go values and carried as-is
package arrowfile
