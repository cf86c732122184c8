package repository

import (
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestSeatsColumn(t *testing.T) {
    t.Parallel()
    assert.Equal(t, "", joinSeats(nil))
    assert.Nil(t, splitSeats(""))
    assert.Equal(t, []string{"A1", "B12"}, splitSeats(joinSeats([]string{"A1", "B12"})))
}

func TestIsDuplicate(t *testing.T) {
    t.Parallel()
    assert.True(t, isDuplicate(errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'PRIMARY'")))
    assert.False(t, isDuplicate(errors.New("Error 1045: access denied")))
    assert.False(t, isDuplicate(nil))
}
