/*
Package domain contains the labelled model vocabulary shared by every adapter.

The numeric core in package hmm only knows state and symbol indices. This
package puts names on them so models can be written by hand, stored, and
served over the wire.

# Key Entities

  - Definition: a named HMM with string labels for states and symbols and
    label-keyed probability tables. It is the unit every store persists.
  - Alphabet: the ordered label set that maps raw symbols to indices and
    decoded state indices back to labels.
  - Compiled: a Definition validated into an immutable hmm.Model plus its
    two alphabets, ready to decode.
  - Result: the labelled outcome of a decode.
*/
package domain
