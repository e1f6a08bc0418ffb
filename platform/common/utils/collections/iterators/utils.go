/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package iterators

// ReadAllPointers drains the iterator and closes it
func ReadAllPointers[T any](it Iterator[*T]) ([]*T, error) {
	defer it.Close()
	items := make([]*T, 0)
	for item, err := it.Next(); item != nil || err != nil; item, err = it.Next() {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ForEach executes the given ConsumeFunc for each element of the Iterator
func ForEach[V any](it Iterator[*V], consume ConsumeFunc[*V]) error {
	defer it.Close()
	for {
		item, err := it.Next()
		if err != nil {
			return err
		}
		if item == nil {
			return nil
		}
		if err := consume(item); err != nil {
			return err
		}
	}
}
