package main

import (
	"context"
	"syscall/js"

	"github.com/pkg/errors"
)

func fetchGet(ctx context.Context, path string) ([]byte, error) {
	var b []byte
	var errored bool
	chErr := make(chan error, 1)

	js.Global().Call("fetch", path, map[string]interface{}{
		"credentials": "include",
	}).Call("then",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			if !args[0].Get("ok").Bool() {
				chErr <- errors.Errorf("failed to fetch %s: %s", path, args[0].Get("statusText").String())
				errored = true
				return nil
			}
			return args[0].Call("arrayBuffer")
		}),
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			chErr <- errors.Errorf("failed to fetch %s", path)
			errored = true
			return nil
		}),
	).Call("then",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			if errored {
				return nil
			}
			array := js.Global().Get("Uint8Array").New(args[0])
			n := array.Get("byteLength").Int()
			b = make([]byte, n)
			js.CopyBytesToGo(b, array)
			chErr <- nil
			return nil
		}),
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			chErr <- errors.New("failed to handle received data")
			return nil
		}),
	)

	select {
	case err := <-chErr:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return b, nil
}
