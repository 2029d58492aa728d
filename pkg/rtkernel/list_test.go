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

import "testing"

func TestListInsertEndOrder(t *testing.T) {
	var l List
	l.Init()

	var a, b, c Item
	a.Init("owner-a", 1)
	b.Init("owner-b", 2)
	c.Init("owner-c", 3)

	l.InsertEnd(&a)
	l.InsertEnd(&b)
	l.InsertEnd(&c)

	var got []any
	for it := l.Head(); it != nil; it = it.Next() {
		got = append(got, it.Owner())
	}
	want := []any{"owner-a", "owner-b", "owner-c"}
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: got owner %v, want %v", i, got[i], want[i])
		}
	}
}

func TestListRemoveMiddle(t *testing.T) {
	var l List
	l.Init()

	var a, b, c Item
	a.Init("a", nil)
	b.Init("b", nil)
	c.Init("c", nil)
	l.InsertEnd(&a)
	l.InsertEnd(&b)
	l.InsertEnd(&c)

	l.Remove(&b)

	var got []any
	for it := l.Head(); it != nil; it = it.Next() {
		got = append(got, it.Owner())
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("got %v, want [a c]", got)
	}

	// Removing again is a no-op.
	l.Remove(&b)
	if l.Head() != &a {
		t.Errorf("double remove corrupted the list head")
	}
}

func TestListSearchByValue(t *testing.T) {
	var l List
	l.Init()

	var a, b Item
	a.Init("owner-a", 100)
	b.Init("owner-b", 200)
	l.InsertEnd(&a)
	l.InsertEnd(&b)

	var found *Item
	for it := l.Head(); it != nil; it = it.Next() {
		if it.Value() == 200 {
			found = it
			break
		}
	}
	if found == nil || found.Owner() != "owner-b" {
		t.Errorf("search by value slot failed to find owner-b")
	}
}
