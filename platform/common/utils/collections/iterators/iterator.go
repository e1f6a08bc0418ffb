/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package iterators

// Iterator is a pull-based lazy sequence.
// Next returns the zero value (nil for pointer elements) and a nil error once the
// sequence is exhausted. A non-nil error is terminal.
type Iterator[V any] interface {
	Next() (V, error)
	// Close releases the resources held by the iterator. Next must not be called afterwards.
	Close()
}

type ConsumeFunc[V any] func(V) error
