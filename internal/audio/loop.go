// ABOUTME: Infinite loop reader over a PCM buffer
// ABOUTME: Feeds oto a stream that never ends until the player is closed
package audio

import "io"

// loopReader replays a PCM buffer from the start every time it reaches
// the end. Read never returns io.EOF for a non-empty buffer.
type loopReader struct {
	pcm []byte
	pos int
}

func newLoopReader(pcm []byte) *loopReader {
	return &loopReader{pcm: pcm}
}

func (r *loopReader) Read(p []byte) (int, error) {
	if len(r.pcm) == 0 {
		return 0, io.EOF
	}

	total := 0
	for total < len(p) {
		n := copy(p[total:], r.pcm[r.pos:])
		total += n
		r.pos += n
		if r.pos == len(r.pcm) {
			r.pos = 0
		}
	}
	return total, nil
}
