package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostFanoutPayload(t *testing.T) {
	data, err := NewPostFanoutTask(12, 3)
	require.NoError(t, err)
	assert.JSONEq(t, `{"post_id":12,"author_id":3}`, string(data))

	p, err := ParsePostFanoutPayload(data)
	require.NoError(t, err)
	assert.Equal(t, PostFanoutPayload{PostID: 12, AuthorID: 3}, p)
}

func TestParsePostFanoutPayload_Invalid(t *testing.T) {
	_, err := ParsePostFanoutPayload([]byte(`{"author_id":3}`))
	assert.Error(t, err, "缺少 post_id")

	_, err = ParsePostFanoutPayload([]byte(`nope`))
	assert.Error(t, err)
}
