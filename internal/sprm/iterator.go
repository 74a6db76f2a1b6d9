package sprm

// Iterator walks the operations of a grpprl front to back.
type Iterator struct {
	grpprl []byte
	offset int
	err    error
}

// NewIterator starts iterating grpprl at offset.
func NewIterator(grpprl []byte, offset int) *Iterator {
	return &Iterator{grpprl: grpprl, offset: offset}
}

// HasNext reports whether at least a token's worth of bytes is left and no
// decode error has occurred.
func (it *Iterator) HasNext() bool {
	return it.err == nil && it.offset >= 0 && len(it.grpprl)-it.offset >= 2
}

// Next decodes the operation at the current offset and advances past it.
// A decode error is sticky: the iterator is exhausted afterwards, since
// the boundaries of later operations are unknown.
func (it *Iterator) Next() (Operation, error) {
	if it.err != nil {
		return Operation{}, it.err
	}
	op, err := ParseOperation(it.grpprl, it.offset)
	if err != nil {
		it.err = err
		it.offset = len(it.grpprl)
		return Operation{}, err
	}
	it.offset += op.Size()
	return op, nil
}

// Offset is the position of the next operation.
func (it *Iterator) Offset() int { return it.offset }

// Err returns the decode error that stopped the iterator, if any.
func (it *Iterator) Err() error { return it.err }

// Operations decodes every operation of grpprl from offset onwards.
func Operations(grpprl []byte, offset int) ([]Operation, error) {
	var ops []Operation
	it := NewIterator(grpprl, offset)
	for it.HasNext() {
		op, err := it.Next()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
