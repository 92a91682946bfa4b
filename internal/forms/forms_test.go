package forms_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yatube/internal/domain"
	"yatube/internal/forms"
	"yatube/internal/repository"
	"yatube/internal/repository/mocks"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPostValidator_EmptyText(t *testing.T) {
	groups := new(mocks.GroupRepository)
	v := forms.NewPostValidator(groups)

	for _, text := range []string{"", "   ", "\n\t"} {
		data, err := v.Validate(context.Background(), forms.PostInput{Text: text})
		assert.Nil(t, data)

		var empty *forms.EmptyFieldError
		require.True(t, errors.As(err, &empty), "blank text %q should give EmptyFieldError", text)
		assert.Equal(t, forms.FieldText, empty.Field)
		assert.Equal(t, forms.MsgPostTextRequired, empty.Message)

		var verr *forms.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{forms.MsgPostTextRequired}, verr.FieldErrors()[forms.FieldText])
	}
	groups.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestPostValidator_TrimsTextAndResolvesGroup(t *testing.T) {
	ctx := context.Background()
	groups := new(mocks.GroupRepository)
	group := &domain.Group{ID: 3, Title: "Cats", Slug: "cats"}
	groups.On("FindByID", ctx, uint(3)).Return(group, nil).Once()

	data, err := forms.NewPostValidator(groups).Validate(ctx, forms.PostInput{Text: "  hello  ", Group: "3"})
	require.NoError(t, err)
	assert.Equal(t, "hello", data.Text)
	require.NotNil(t, data.GroupID)
	assert.Equal(t, uint(3), *data.GroupID)
	assert.Nil(t, data.Image)
	groups.AssertExpectations(t)
}

func TestPostValidator_InvalidGroupReference(t *testing.T) {
	ctx := context.Background()
	groups := new(mocks.GroupRepository)
	groups.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrGroupNotFound).Once()
	v := forms.NewPostValidator(groups)

	for _, raw := range []string{"99", "abc", "-1", "0"} {
		_, err := v.Validate(ctx, forms.PostInput{Text: "text", Group: raw})
		var ref *forms.InvalidReferenceError
		require.True(t, errors.As(err, &ref), "group %q should be rejected", raw)
		assert.Equal(t, forms.FieldGroup, ref.Field)
		assert.Equal(t, raw, ref.Value)
	}
	groups.AssertExpectations(t)
}

func TestPostValidator_GroupLookupFailureIsNotValidationError(t *testing.T) {
	ctx := context.Background()
	groups := new(mocks.GroupRepository)
	dbErr := errors.New("connection refused")
	groups.On("FindByID", ctx, uint(1)).Return(nil, dbErr).Once()

	_, err := forms.NewPostValidator(groups).Validate(ctx, forms.PostInput{Text: "text", Group: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	var verr *forms.ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestPostValidator_Image(t *testing.T) {
	v := forms.NewPostValidator(new(mocks.GroupRepository))

	data, err := v.Validate(context.Background(), forms.PostInput{
		Text:  "with picture",
		Image: &forms.Upload{Filename: "small.png", Data: pngBytes(t)},
	})
	require.NoError(t, err)
	require.NotNil(t, data.Image)
	assert.Equal(t, "png", data.Image.Format)
	assert.Equal(t, ".png", data.Image.Ext())
	assert.Equal(t, 2, data.Image.Width)

	_, err = v.Validate(context.Background(), forms.PostInput{
		Text:  "broken picture",
		Image: &forms.Upload{Filename: "small.png", Data: []byte("definitely not a png")},
	})
	var imgErr *forms.InvalidImageError
	require.True(t, errors.As(err, &imgErr))
	assert.Equal(t, forms.FieldImage, imgErr.Field)
}

func TestPostValidator_EmptyUploadIsInvalid(t *testing.T) {
	v := forms.NewPostValidator(new(mocks.GroupRepository))

	data, err := v.Validate(context.Background(), forms.PostInput{
		Text:  "empty picture",
		Image: &forms.Upload{Filename: "empty.png", Data: []byte{}},
	})

	assert.Nil(t, data)
	var imgErr *forms.InvalidImageError
	require.True(t, errors.As(err, &imgErr), "空文件应被拒绝，而不是当作没有上传")
	assert.Equal(t, forms.FieldImage, imgErr.Field)
	assert.Equal(t, forms.MsgEmptyImage, imgErr.Message)
	assert.ErrorIs(t, err, forms.ErrEmptyUpload)
}

func TestPostValidator_CollectsAllFieldErrors(t *testing.T) {
	v := forms.NewPostValidator(new(mocks.GroupRepository))

	_, err := v.Validate(context.Background(), forms.PostInput{
		Text:  " ",
		Group: "x",
		Image: &forms.Upload{Data: []byte("nope")},
	})
	var verr *forms.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := verr.FieldErrors()
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, forms.FieldText)
	assert.Contains(t, fields, forms.FieldGroup)
	assert.Contains(t, fields, forms.FieldImage)
}

func TestValidateComment(t *testing.T) {
	_, err := forms.ValidateComment(forms.CommentInput{Text: "  "})
	var empty *forms.EmptyFieldError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, forms.FieldText, empty.Field)

	data, err := forms.ValidateComment(forms.CommentInput{Text: " nice post "})
	require.NoError(t, err)
	assert.Equal(t, "nice post", data.Text)
}
