package goroutine

import (
	"testing"

	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
)

func TestRecoverableGo(t *testing.T) {
	res := []string{}

	ev := <-RecoverableGo(
		bCtx.Background(),
		func() {
			res = append(res, "run task")
			panic("panic")
		},
		WithBeforeStart(func() {
			res = append(res, "before start")
		}),
		WithAfterEnded(func() {
			res = append(res, "after ended")
		}),
		WithAfterRecovered(func(p interface{}, stack []byte) {
			res = append(res, "after recovered")
			res = append(res, p.(string))
		}),
	)

	require.Equal(t, []string{
		"before start",
		"run task",
		"after ended",
		"after recovered",
		"panic",
	}, res)
	require.NotNil(t, ev)
	require.Equal(t, "panic", ev.Panic)
	require.NotEmpty(t, ev.Stack)
}

func TestRecoverableGoReturns(t *testing.T) {
	ended := false
	ch := RecoverableGo(bCtx.Background(), func() {}, WithAfterEnded(func() { ended = true }))

	ev, ok := <-ch
	require.False(t, ok)
	require.Nil(t, ev)
	require.True(t, ended)
}
