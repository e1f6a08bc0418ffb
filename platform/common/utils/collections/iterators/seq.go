/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package iterators

import "iter"

// Seq2 adapts an iterator of pointers to a range-over-func sequence.
// The iterator is closed when the loop ends, whether exhausted, failed or interrupted by break.
// A failure is reported once, as the last pair of the sequence.
func Seq2[T any](it Iterator[*T]) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		defer it.Close()
		for {
			item, err := it.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if item == nil || !yield(item, nil) {
				return
			}
		}
	}
}
