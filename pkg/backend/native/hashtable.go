package native

import (
	"strconv"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/snapshot"
)

// TableSize is the fixed bucket count of the hash table.
const TableSize = 10

type entry struct {
	key, value int
}

// hashTable chains entries per bucket. New keys are inserted at the head of
// their bucket, so snapshots list the newest entry first.
type hashTable struct {
	handle
	buckets [TableSize][]entry
}

func newHashTable() *hashTable { return &hashTable{} }

func bucketOf(key int) int {
	if key < 0 {
		key = -key
	}
	return key % TableSize
}

func (t *hashTable) Insert(key, value int) {
	b := bucketOf(key)
	for i := range t.buckets[b] {
		if t.buckets[b][i].key == key {
			t.buckets[b][i].value = value
			return
		}
	}
	t.buckets[b] = append([]entry{{key: key, value: value}}, t.buckets[b]...)
}

func (t *hashTable) Search(key int) int {
	for _, e := range t.buckets[bucketOf(key)] {
		if e.key == key {
			return e.value
		}
	}
	return backend.NotFound
}

func (t *hashTable) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
}

func (t *hashTable) Table() string {
	out := make(snapshot.Buckets, TableSize)
	for i, bucket := range t.buckets {
		out[i] = make(snapshot.Bucket, len(bucket))
		for j, e := range bucket {
			out[i][j] = strconv.Itoa(e.key) + ":" + strconv.Itoa(e.value)
		}
	}
	return snapshot.FormatBuckets(out)
}

var _ backend.HashTable = (*hashTable)(nil)
