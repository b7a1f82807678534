package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(candidate any) (any, error) {
	args := m.Called(candidate)
	return args.Get(0), args.Error(1)
}

func TestProcessInput(t *testing.T) {
	t.Parallel()

	d := new(mockDispatcher)
	d.On("Dispatch", []any{1.0, 2.0}).Return("pair", nil)

	got, err := ProcessInput(d, "[1, 2]")
	require.NoError(t, err)
	assert.Equal(t, "pair", got)
	d.AssertExpectations(t)
}

func TestProcessInputInvalidJSON(t *testing.T) {
	t.Parallel()

	d := new(mockDispatcher)
	_, err := ProcessInput(d, "[1,")
	assert.Error(t, err)
	d.AssertNotCalled(t, "Dispatch", mock.Anything)
}

func TestProcessInputs(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	d := new(mockDispatcher)
	d.On("Dispatch", 1.0).Return("one", nil)
	d.On("Dispatch", "two").Return(nil, boom)
	d.On("Dispatch", map[string]any{"x": 3.0}).Return(3, nil)

	core, logs := observer.New(zap.ErrorLevel)
	inputs := []string{"1", `"two"`, `{"x": 3}`, "nope"}

	items, err := ProcessInputs(context.Background(), zap.New(core), d, inputs, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, items, len(inputs))

	for i, item := range items {
		assert.Equal(t, i, item.Index)
		assert.Equal(t, inputs[i], item.Input)
	}
	assert.Equal(t, "one", items[0].Result)
	assert.ErrorIs(t, items[1].Err, boom)
	assert.Equal(t, 3, items[2].Result)
	assert.Error(t, items[3].Err)

	assert.Equal(t, 2, Failed(items))
	assert.Equal(t, 2, logs.FilterMessage("Error processing input").Len())
	d.AssertExpectations(t)
}

func TestProcessInputsBoundsWorkers(t *testing.T) {
	t.Parallel()

	var running, peak atomic.Int32
	release := make(chan struct{})
	d := DispatcherFunc(func(candidate any) (any, error) {
		n := running.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		<-release
		running.Add(-1)
		return candidate, nil
	})

	inputs := make([]string, 20)
	for i := range inputs {
		inputs[i] = fmt.Sprint(i)
	}

	done := make(chan []Item)
	go func() {
		items, _ := ProcessInputs(context.Background(), nil, d, inputs, Options{Workers: 3})
		done <- items
	}()
	close(release)

	items := <-done
	require.Len(t, items, 20)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	for i, item := range items {
		assert.Equal(t, float64(i), item.Result)
	}
}

func TestProcessInputsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	d := DispatcherFunc(func(candidate any) (any, error) {
		calls.Add(1)
		return nil, nil
	})

	items, err := ProcessInputs(ctx, nil, d, []string{"1", "2", "3", "4"}, Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, items)
	assert.Zero(t, calls.Load())
}

func TestProcessInputsProgress(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	d := DispatcherFunc(func(candidate any) (any, error) { return candidate, nil })

	items, err := ProcessInputs(context.Background(), nil, d, []string{"1", "2"}, Options{
		Progress:    &out,
		Description: "dispatching",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, Failed(items))
	assert.Contains(t, out.String(), "dispatching")
}

func TestReadInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"blank lines", "\n  \n", nil},
		{"lines", "1\n\n  [1, 2]  \n{\"a\": 1}", []string{"1", "[1, 2]", `{"a": 1}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ReadInputs(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadInputsError(t *testing.T) {
	t.Parallel()

	_, err := ReadInputs(io.MultiReader(strings.NewReader("1\n"), errReader{}))
	assert.Error(t, err)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }
