package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themetoggle/internal/theme"
)

func TestBus_SubscribeReceivesOnce(t *testing.T) {
	b := NewBus()

	var got []Change
	b.Subscribe(func(c Change) { got = append(got, c) })

	b.Publish(Change{Theme: theme.Light})

	require.Len(t, got, 1)
	assert.Equal(t, theme.Light, got[0].Theme)
}

func TestBus_MultipleListeners(t *testing.T) {
	b := NewBus()

	var a, c int
	b.Subscribe(func(Change) { a++ })
	b.Subscribe(func(Change) { c++ })
	ch := b.Listen()

	b.Publish(Change{Theme: theme.Dark})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, c)
	select {
	case got := <-ch:
		assert.Equal(t, theme.Dark, got.Theme)
	default:
		t.Fatal("channel listener should have received the change")
	}
	assert.Equal(t, 3, b.Len())
}

func TestBus_Unsubscribe(t *testing.T) {
	b := NewBus()

	count := 0
	unsubscribe := b.Subscribe(func(Change) { count++ })
	b.Publish(Change{Theme: theme.Light})
	unsubscribe()
	unsubscribe()
	b.Publish(Change{Theme: theme.Dark})

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, b.Len())
}

func TestBus_CallbackMayPublish(t *testing.T) {
	b := NewBus()

	var seen []theme.ID
	b.Subscribe(func(c Change) {
		seen = append(seen, c.Theme)
		if c.Theme == theme.Light {
			b.Publish(Change{Theme: theme.Dark})
		}
	})

	b.Publish(Change{Theme: theme.Light})
	assert.Equal(t, []theme.ID{theme.Light, theme.Dark}, seen)
}

func TestBus_FullChannelDoesNotBlock(t *testing.T) {
	b := NewBus()
	ch := b.Listen()

	for i := 0; i < 50; i++ {
		b.Publish(Change{Theme: theme.Light})
	}
	assert.Len(t, ch, cap(ch))
}

func TestBus_Unlisten(t *testing.T) {
	b := NewBus()
	ch := b.Listen()
	b.Unlisten(ch)

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")
	assert.Equal(t, 0, b.Len())
}

func TestBus_Close(t *testing.T) {
	b := NewBus()
	ch := b.Listen()
	count := 0
	b.Subscribe(func(Change) { count++ })

	b.Close()
	b.Close()
	b.Publish(Change{Theme: theme.Light})

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, count)

	late := b.Listen()
	_, ok = <-late
	assert.False(t, ok, "listening on a closed bus yields a closed channel")
	b.Subscribe(func(Change) { count++ })()
}
