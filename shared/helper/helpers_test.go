package helper_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/on-the-ground/memo_ive_go/shared/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ X, Y int }

type label struct{ name string }

func (l label) String() string { return "label:" + l.name }

func TestGetTypedValueOf(t *testing.T) {
	v, err := helper.GetTypedValueOf[int](func() (any, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = helper.GetTypedValueOf[string](func() (any, error) { return 42, nil })
	assert.ErrorIs(t, err, helper.ErrUnexpectedType)

	boom := errors.New("boom")
	_, err = helper.GetTypedValueOf[int](func() (any, error) { return nil, boom })
	assert.Same(t, boom, err, "getter errors must not be wrapped")

	e, err := helper.GetTypedValueOf[error](func() (any, error) { return nil, nil })
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestPartitionKey(t *testing.T) {
	assert.Equal(t, "abc", helper.PartitionKey("abc"))
	assert.Equal(t, "-7", helper.PartitionKey(-7))
	assert.Equal(t, "9", helper.PartitionKey(uint64(9)))
	assert.Equal(t, "label:a", helper.PartitionKey(label{name: "a"}))
	assert.Equal(t, fmt.Sprintf("%v", point{1, 2}), helper.PartitionKey(point{1, 2}))
	assert.Equal(t, helper.PartitionKey(point{3, 4}), helper.PartitionKey(point{3, 4}))
}
