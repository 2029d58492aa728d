// Copyright 2018 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rtkernel

// Item is one node of an intrusive doubly-linked List. It is meant to be
// embedded by value inside the structure it links (the thread registry
// embeds one in each descriptor), never allocated or owned separately —
// the item's lifetime is exactly its owner's lifetime, which is how this
// port avoids the owner/item cyclic reference the source's
// list_item_t/struct rtos_pthread pair has in C: here the Item has no
// pointer back to its owner except through the Owner field the caller
// populates, and the List never allocates Items itself.
//
// Owner and Value are deliberately untyped (any): the registry searches the
// list by owner identity (find_task_by_descriptor) and by value
// (find_descriptor_by_task), exactly as §3's "searchable from either
// direction" requires, and the two searches want different concrete types
// on each side.
type Item struct {
	owner any
	value any

	next *Item
	prev *Item
	list *List
}

// Init associates owner and value with this item. It must be called before
// the item is inserted into a List.
func (it *Item) Init(owner, value any) {
	it.owner = owner
	it.value = value
	it.next = nil
	it.prev = nil
	it.list = nil
}

// SetOwner updates the item's owner slot.
func (it *Item) SetOwner(owner any) { it.owner = owner }

// SetValue updates the item's value slot.
func (it *Item) SetValue(value any) { it.value = value }

// Owner returns the item's owner slot.
func (it *Item) Owner() any { return it.owner }

// Value returns the item's value slot.
func (it *Item) Value() any { return it.value }

// Next returns the next item in the list, or nil at the end.
func (it *Item) Next() *Item { return it.next }

// List is an intrusive doubly-linked list of Items. It owns no memory: it
// only ever links and unlinks Items the caller allocated as part of some
// other structure.
type List struct {
	head *Item
	tail *Item
}

// Init resets the list to empty. A zero-value List is already empty; Init
// exists so call sites can mirror the source's explicit vListInitialise.
func (l *List) Init() {
	l.head = nil
	l.tail = nil
}

// Head returns the first item, or nil if the list is empty.
func (l *List) Head() *Item { return l.head }

// InsertEnd appends it to the end of the list.
func (l *List) InsertEnd(it *Item) {
	it.list = l
	it.prev = l.tail
	it.next = nil
	if l.tail != nil {
		l.tail.next = it
	} else {
		l.head = it
	}
	l.tail = it
}

// Remove unlinks it from whichever list it is currently a member of. It is
// a no-op if it is not linked.
func (l *List) Remove(it *Item) {
	if it.list != l {
		return
	}
	if it.prev != nil {
		it.prev.next = it.next
	} else {
		l.head = it.next
	}
	if it.next != nil {
		it.next.prev = it.prev
	} else {
		l.tail = it.prev
	}
	it.next = nil
	it.prev = nil
	it.list = nil
}
