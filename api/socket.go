package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// framesSocket streams every frame of a game, from the first, as JSON text
// messages. The socket is closed normally once the game has stopped and the
// last frame has been sent.
func (s *Server) framesSocket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	ctx := r.Context()
	if _, err := s.store.GetGame(ctx, id); err != nil {
		writeError(w, err)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("unable to upgrade connection")
		return
	}
	logger := log.WithField("GameID", id)
	defer func() {
		if err := ws.Close(); err != nil {
			logger.WithError(err).Error("unable to close websocket stream")
		}
	}()

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	offset := 0
	for {
		// Read the status before the frames, a game that stops in between
		// gets one more pass.
		g, err := s.store.GetGame(ctx, id)
		if err != nil {
			logger.WithError(err).Error("unable to read game")
			return
		}
		frames, err := s.store.ListGameFrames(ctx, id, maxFrameLimit, offset)
		if err != nil {
			logger.WithError(err).Error("unable to list frames")
			return
		}
		for _, f := range frames {
			if err := ws.WriteJSON(f); err != nil {
				logger.WithError(err).Debug("spectator went away")
				return
			}
		}
		offset += len(frames)

		if len(frames) == 0 && g.Status.Finished() {
			break
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		logger.WithError(err).Debug("unable to send close")
	}
}
