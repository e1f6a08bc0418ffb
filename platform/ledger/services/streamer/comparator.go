/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package streamer

import "cmp"

// Comparator returns a negative value if a sorts before b in ascending order,
// zero if they are equal and a positive value otherwise
type Comparator[T any] func(a, b *T) int

// CompareBy compares items on the natural order of an extracted key
func CompareBy[T any, K cmp.Ordered](key func(*T) K) Comparator[T] {
	return func(a, b *T) int {
		return cmp.Compare(key(a), key(b))
	}
}
