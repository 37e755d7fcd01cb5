package commands

import (
	"sync"

	"github.com/battlesnakeio/snake/game"
)

type frameHolder struct {
	sync.RWMutex
	frames []*game.GameFrame
	ffc    chan *game.GameFrame
	once   sync.Once
}

func (fh *frameHolder) first() chan *game.GameFrame {
	fh.once.Do(func() {
		fh.ffc = make(chan *game.GameFrame, 1)
	})
	return fh.ffc
}

func (fh *frameHolder) append(frame *game.GameFrame) {
	fh.Lock()
	defer fh.Unlock()

	if len(fh.frames) == 0 {
		ffc := fh.first()
		ffc <- frame
		close(ffc)
	}

	fh.frames = append(fh.frames, frame)
}

func (fh *frameHolder) get(index int) *game.GameFrame {
	fh.RLock()
	defer fh.RUnlock()

	if index < 0 || index >= len(fh.frames) {
		return nil
	}

	return fh.frames[index]
}

func (fh *frameHolder) initialFrame() <-chan *game.GameFrame {
	return fh.first()
}

func (fh *frameHolder) count() int {
	fh.RLock()
	defer fh.RUnlock()

	return len(fh.frames)
}
