package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCloser struct {
	bytes.Buffer
}

func (f *failingCloser) Close() error { return errors.New("close failed") }

func casinoResult(t *testing.T) (domain.Result, []string) {
	t.Helper()
	c, err := domain.DishonestCasino().Compile()
	require.NoError(t, err)
	res, err := c.Decode([]string{"6", "6", "6", "6", "6", "6", "1", "2", "3", "4", "5", "1", "2", "3"})
	require.NoError(t, err)
	return res, c.States.Labels()
}

func TestPathPlot_PNG(t *testing.T) {
	res, labels := casinoResult(t)
	p, err := PathPlot(res, labels)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePlot(p, DefaultWidth, DefaultHeight, &buf, "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "output should be a PNG")
}

func TestPathPlot_SVG(t *testing.T) {
	res, labels := casinoResult(t)
	p, err := PathPlot(res, labels)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePlot(p, DefaultWidth, DefaultHeight, &buf, "svg"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestPathPlot_Empty(t *testing.T) {
	_, err := PathPlot(domain.Result{Model: "casino"}, []string{"FAIR", "LOADED"})
	assert.Error(t, err)
}

func TestWritePlot_UnknownFormat(t *testing.T) {
	res, labels := casinoResult(t)
	p, err := PathPlot(res, labels)
	require.NoError(t, err)

	assert.Error(t, WritePlot(p, DefaultWidth, DefaultHeight, &bytes.Buffer{}, "bmp-nope"))
}

func TestWriteClosePlot_CombinesErrors(t *testing.T) {
	res, labels := casinoResult(t)
	p, err := PathPlot(res, labels)
	require.NoError(t, err)

	err = WriteClosePlot(p, DefaultWidth, DefaultHeight, &failingCloser{}, "bmp-nope")
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
}

func TestSavePlot(t *testing.T) {
	res, labels := casinoResult(t)
	p, err := PathPlot(res, labels)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "path.png")
	require.NoError(t, SavePlot(p, DefaultWidth, DefaultHeight, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, SavePlot(p, DefaultWidth, DefaultHeight, filepath.Join(t.TempDir(), "noext")))
}

func TestCombineErrors(t *testing.T) {
	a, b := errors.New("a"), errors.New("b")
	assert.NoError(t, combineErrors(nil, nil))
	assert.Equal(t, a, combineErrors(nil, a))
	combined := combineErrors(a, nil, b)
	assert.ErrorIs(t, combined, a)
	assert.ErrorIs(t, combined, b)
}
