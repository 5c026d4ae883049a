package mqtt

// queuedMsg is a serialized MQTT message held for replay after reconnection.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// replayQueue holds messages published while the broker is unreachable.
// Fixed capacity; when full the oldest message is dropped. Not safe for
// concurrent use — the publisher synchronizes access.
type replayQueue struct {
	msgs    []queuedMsg
	next    int // next write position
	count   int
	dropped int // messages lost to overflow since the last drain
}

func newReplayQueue(capacity int) *replayQueue {
	return &replayQueue{msgs: make([]queuedMsg, capacity)}
}

func (q *replayQueue) push(msg queuedMsg) {
	if q.count == len(q.msgs) {
		// next already points at the oldest entry; overwrite it.
		q.dropped++
	} else {
		q.count++
	}
	q.msgs[q.next] = msg
	q.next = (q.next + 1) % len(q.msgs)
}

// drain returns the queued messages oldest-first along with the number of
// messages dropped to overflow, and resets the queue.
func (q *replayQueue) drain() ([]queuedMsg, int) {
	dropped := q.dropped
	if q.count == 0 {
		q.dropped = 0
		return nil, dropped
	}

	out := make([]queuedMsg, q.count)
	oldest := (q.next - q.count + len(q.msgs)) % len(q.msgs)
	for i := range out {
		out[i] = q.msgs[(oldest+i)%len(q.msgs)]
	}

	q.count = 0
	q.next = 0
	q.dropped = 0
	return out, dropped
}

func (q *replayQueue) len() int {
	return q.count
}
