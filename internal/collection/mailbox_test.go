package collection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMailboxFIFO(t *testing.T) {
	m := newMailbox()
	for i := 0; i < 100; i++ {
		require.True(t, m.push(message{event: &Event{Kind: EventCreateRegion, Region: newRegion(uint64(i), "", "")}}))
	}
	require.Equal(t, 100, m.len())

	for i := 0; i < 100; i++ {
		msg, ok := m.pop()
		require.True(t, ok)
		require.EqualValues(t, i, msg.event.Region.ID)
	}
	require.Zero(t, m.len())
}

func TestMailboxCloseDrains(t *testing.T) {
	m := newMailbox()
	require.True(t, m.push(message{event: &Event{}}))
	require.True(t, m.push(message{event: &Event{}}))
	m.close()

	// Admission is rejected after close, but admitted messages survive.
	require.False(t, m.push(message{event: &Event{}}))
	_, ok := m.pop()
	require.True(t, ok)
	_, ok = m.pop()
	require.True(t, ok)
	_, ok = m.pop()
	require.False(t, ok)
}

func TestMailboxPopBlocksUntilPush(t *testing.T) {
	m := newMailbox()
	done := make(chan message, 1)
	go func() {
		msg, ok := m.pop()
		if ok {
			done <- msg
		}
	}()

	require.True(t, m.push(message{event: &Event{Kind: EventDestroyRegion}}))
	msg := <-done
	require.Equal(t, EventDestroyRegion, msg.event.Kind)
}

func TestMailboxConcurrentProducers(t *testing.T) {
	m := newMailbox()
	const producers = 8
	const perProducer = 200

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				m.push(message{event: &Event{Kind: EventUpdateRegion}})
			}
		}()
	}
	wg.Wait()

	require.Equal(t, producers*perProducer, m.len())
}
