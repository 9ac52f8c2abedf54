package imaging_test

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astucampus/lostandfound/internal/imaging"
)

func TestProcess(t *testing.T) {
	//
	// PNG in, JPEG out.
	//

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 16))))

	data, err := imaging.Process(&buf)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	//
	// Oversized input is downscaled, keeping the aspect ratio.
	//

	buf.Reset()
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, imaging.MaxDimension*2, imaging.MaxDimension))))

	data, err = imaging.Process(&buf)
	require.NoError(t, err)

	img, err = jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imaging.MaxDimension, img.Bounds().Dx())
	assert.Equal(t, imaging.MaxDimension/2, img.Bounds().Dy())
}

func TestProcessRejectsNonImages(t *testing.T) {
	_, err := imaging.Process(strings.NewReader("%PDF-1.4 definitely not a picture"))
	assert.Equal(t, imaging.ErrUnsupportedFormat, err)

	_, err = imaging.Process(strings.NewReader("<svg xmlns='http://www.w3.org/2000/svg'/>"))
	assert.Equal(t, imaging.ErrUnsupportedFormat, err)
}

func TestStore(t *testing.T) {
	dir := t.TempDir()

	store, err := imaging.NewStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	name, err := store.Save([]byte("jpeg bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	data, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)

	// Path components in the name cannot escape the store.
	require.NoError(t, store.Remove("../"+name))
	_, err = os.Stat(filepath.Join(store.Dir(), name))
	assert.True(t, os.IsNotExist(err))

	// Removing twice, or removing nothing, is fine.
	assert.NoError(t, store.Remove(name))
	assert.NoError(t, store.Remove(""))
}
