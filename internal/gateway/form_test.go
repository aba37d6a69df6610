package gateway

import (
	"io"
	"mime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormEncodeReportsFieldMarshalErrors(t *testing.T) {
	f := newForm(nil).
		set("name", "Bikes").
		setJSON("features", make(chan int)).
		file("image", &File{Name: "bikes.png", Content: strings.NewReader("png")})

	body, contentType, err := f.encode()

	assert.Nil(t, body)
	assert.Empty(t, contentType)
	assert.ErrorContains(t, err, "encode field features")
}

func TestFormEncodeSkipsNullFields(t *testing.T) {
	f := newForm(nil).
		setJSON("subcategories", []string(nil)).
		setJSON("features", []string{"size"}).
		file("image", &File{Name: "bikes.png", Content: strings.NewReader("png")})

	body, contentType, err := f.encode()
	require.NoError(t, err)

	mediaType, _, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `["size"]`)
	assert.NotContains(t, string(raw), `name="subcategories"`)
}
