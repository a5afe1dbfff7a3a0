// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookshelf/pkg/pointer"
)

func TestTo(t *testing.T) {
	limit := 5
	p := pointer.To(limit)
	limit = 7

	assert.Equal(t, 5, *p)
}

func TestVal(t *testing.T) {
	assert.Equal(t, 0, pointer.Val[int](nil))
	assert.Equal(t, 3, pointer.Val(pointer.To(3)))
	assert.Equal(t, "", pointer.Val[string](nil))
}
