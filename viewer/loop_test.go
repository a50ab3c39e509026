package viewer

import (
	"context"
	"reflect"
	"testing"
	"time"
)

type recordFrame struct {
	log    *[]string
	ticked chan struct{}
}

func (f *recordFrame) Update(time.Time) {
	*f.log = append(*f.log, "update")
}

func (f *recordFrame) Render() {
	*f.log = append(*f.log, "render")
	f.ticked <- struct{}{}
}

func TestLoop(t *testing.T) {
	var log []string
	l := NewLoop(4)
	ticks := make(chan time.Time)
	f := &recordFrame{log: &log, ticked: make(chan struct{}, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	chErr := make(chan error, 1)
	go func() {
		chErr <- l.Run(ctx, ticks, f)
	}()

	if !l.Post(func() { log = append(log, "event1") }) {
		t.Fatal("Post must succeed while running")
	}
	l.Post(func() { log = append(log, "event2") })
	if !l.Wait(func() { log = append(log, "wait") }) {
		t.Fatal("Wait must succeed while running")
	}

	ticks <- time.Now()
	<-f.ticked

	cancel()
	if err := <-chErr; err != context.Canceled {
		t.Errorf("Expected %v, got %v", context.Canceled, err)
	}
	expected := []string{"event1", "event2", "wait", "update", "render"}
	if !reflect.DeepEqual(expected, log) {
		t.Errorf("Expected %v, got %v", expected, log)
	}
	if l.Post(func() {}) {
		t.Error("Post must fail after the loop stopped")
	}
	if l.Wait(func() {}) {
		t.Error("Wait must fail after the loop stopped")
	}
}
